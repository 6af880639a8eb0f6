package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

// envelope mirrors the registry's response body shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// resolveToken returns the explicit --token value, falling back to the
// ORGMASTER_TOKEN environment variable.
func resolveToken(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("ORGMASTER_TOKEN")
}

// doRequest sends a JSON request to the registry and decodes the response
// envelope. A non-2xx status returns an error carrying the server's message.
func doRequest(method, url, token string, body interface{}) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if env.Message != "" {
			return nil, fmt.Errorf("registry returned %d: %s", resp.StatusCode, env.Message)
		}
		return nil, fmt.Errorf("registry returned %d", resp.StatusCode)
	}

	return &env, nil
}

// printData pretty-prints the envelope's data payload to stdout.
func printData(env *envelope) error {
	if len(env.Data) == 0 {
		return nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, env.Data, "", "  "); err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(out.String())
	return nil
}
