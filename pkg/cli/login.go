package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
)

func newLoginCommand() *Command {
	cmd := &Command{
		Name:        "login",
		Description: "Authenticate an admin and print a bearer token",
		Flags:       flag.NewFlagSet("login", flag.ExitOnError),
		Run:         runLogin,
	}

	cmd.Flags.String("email", "", "Admin email address")
	cmd.Flags.String("password", "", "Admin password")
	cmd.Flags.String("registry", "http://localhost:8080", "Registry URL")

	return cmd
}

func runLogin(args []string) error {
	cmd := newLoginCommand()
	if err := cmd.Flags.Parse(args); err != nil {
		return err
	}

	email := cmd.Flags.Lookup("email").Value.String()
	password := cmd.Flags.Lookup("password").Value.String()
	registry := cmd.Flags.Lookup("registry").Value.String()

	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

	body := map[string]string{
		"email":    email,
		"password": password,
	}

	env, err := doRequest(http.MethodPost, registry+"/api/admin/login", "", body)
	if err != nil {
		return err
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}

	// Print only the token so it can be captured: export ORGMASTER_TOKEN=$(orgmaster login ...)
	fmt.Println(result.Token)
	return nil
}
