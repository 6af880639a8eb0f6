package cli

import (
	"flag"
	"fmt"
	"net/http"
)

func newDeleteCommand() *Command {
	cmd := &Command{
		Name:        "delete",
		Description: "Delete an organization, its admin and its partition",
		Flags:       flag.NewFlagSet("delete", flag.ExitOnError),
		Run:         runDelete,
	}

	cmd.Flags.String("name", "", "Organization name")
	cmd.Flags.String("token", "", "Bearer token (defaults to ORGMASTER_TOKEN)")
	cmd.Flags.String("registry", "http://localhost:8080", "Registry URL")
	cmd.Flags.Bool("yes", false, "Skip the confirmation prompt")

	return cmd
}

func runDelete(args []string) error {
	cmd := newDeleteCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}

	name := cmd.Flags.Lookup("name").Value.String()
	token := resolveToken(cmd.Flags.Lookup("token").Value.String())
	registry := cmd.Flags.Lookup("registry").Value.String()
	confirmed := cmd.Flags.Lookup("yes").Value.String() == "true"

	if name == "" {
		return fmt.Errorf("name is required")
	}
	if token == "" {
		return fmt.Errorf("a bearer token is required (use --token or ORGMASTER_TOKEN)")
	}

	if !confirmed {
		fmt.Printf("Delete organization %s and all of its data? [y/N]: ", name)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	env, err := doRequest(http.MethodDelete, registry+"/api/organizations/"+name, token, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted organization %s\n", name)
	return printData(env)
}
