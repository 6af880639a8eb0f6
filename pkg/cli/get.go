package cli

import (
	"flag"
	"fmt"
	"net/http"
)

func newGetCommand() *Command {
	cmd := &Command{
		Name:        "get",
		Description: "Show an organization and its admin",
		Flags:       flag.NewFlagSet("get", flag.ExitOnError),
		Run:         runGet,
	}

	cmd.Flags.String("name", "", "Organization name")
	cmd.Flags.String("token", "", "Bearer token (defaults to ORGMASTER_TOKEN)")
	cmd.Flags.String("registry", "http://localhost:8080", "Registry URL")

	return cmd
}

func runGet(args []string) error {
	cmd := newGetCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}

	name := cmd.Flags.Lookup("name").Value.String()
	token := resolveToken(cmd.Flags.Lookup("token").Value.String())
	registry := cmd.Flags.Lookup("registry").Value.String()

	if name == "" {
		return fmt.Errorf("name is required")
	}
	if token == "" {
		return fmt.Errorf("a bearer token is required (use --token or ORGMASTER_TOKEN)")
	}

	env, err := doRequest(http.MethodGet, registry+"/api/organizations/"+name, token, nil)
	if err != nil {
		return err
	}

	return printData(env)
}
