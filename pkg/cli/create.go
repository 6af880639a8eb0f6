package cli

import (
	"flag"
	"fmt"
	"net/http"
)

func newCreateCommand() *Command {
	cmd := &Command{
		Name:        "create",
		Description: "Create an organization and its bootstrap admin",
		Flags:       flag.NewFlagSet("create", flag.ExitOnError),
		Run:         runCreate,
	}

	cmd.Flags.String("name", "", "Organization name (lowercase letters, digits, _ and -)")
	cmd.Flags.String("email", "", "Admin email address")
	cmd.Flags.String("password", "", "Admin password")
	cmd.Flags.String("registry", "http://localhost:8080", "Registry URL")

	return cmd
}

func runCreate(args []string) error {
	cmd := newCreateCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}

	name := cmd.Flags.Lookup("name").Value.String()
	email := cmd.Flags.Lookup("email").Value.String()
	password := cmd.Flags.Lookup("password").Value.String()
	registry := cmd.Flags.Lookup("registry").Value.String()

	if name == "" || email == "" || password == "" {
		return fmt.Errorf("name, email and password are required")
	}

	body := map[string]string{
		"organization_name": name,
		"email":             email,
		"password":          password,
	}

	env, err := doRequest(http.MethodPost, registry+"/api/organizations", "", body)
	if err != nil {
		return err
	}

	fmt.Printf("Created organization %s\n", name)
	return printData(env)
}
