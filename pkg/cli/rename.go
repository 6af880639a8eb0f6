package cli

import (
	"flag"
	"fmt"
	"net/http"
)

func newRenameCommand() *Command {
	cmd := &Command{
		Name:        "rename",
		Description: "Rename an organization, migrating its partition",
		Flags:       flag.NewFlagSet("rename", flag.ExitOnError),
		Run:         runRename,
	}

	cmd.Flags.String("name", "", "Current organization name")
	cmd.Flags.String("new-name", "", "New organization name")
	cmd.Flags.String("email", "", "New admin email (optional)")
	cmd.Flags.String("password", "", "New admin password (optional)")
	cmd.Flags.String("token", "", "Bearer token (defaults to ORGMASTER_TOKEN)")
	cmd.Flags.String("registry", "http://localhost:8080", "Registry URL")

	return cmd
}

func runRename(args []string) error {
	cmd := newRenameCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}

	name := cmd.Flags.Lookup("name").Value.String()
	newName := cmd.Flags.Lookup("new-name").Value.String()
	email := cmd.Flags.Lookup("email").Value.String()
	password := cmd.Flags.Lookup("password").Value.String()
	token := resolveToken(cmd.Flags.Lookup("token").Value.String())
	registry := cmd.Flags.Lookup("registry").Value.String()

	if name == "" || newName == "" {
		return fmt.Errorf("name and new-name are required")
	}
	if token == "" {
		return fmt.Errorf("a bearer token is required (use --token or ORGMASTER_TOKEN)")
	}

	body := map[string]string{"organization_name": newName}
	if email != "" {
		body["email"] = email
	}
	if password != "" {
		body["password"] = password
	}

	env, err := doRequest(http.MethodPut, registry+"/api/organizations/"+name, token, body)
	if err != nil {
		return err
	}

	fmt.Printf("Renamed organization %s to %s\n", name, newName)
	return printData(env)
}
