package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeRegistry serves the handful of routes the CLI talks to and records
// the requests it received.
func newFakeRegistry(t *testing.T) (*httptest.Server, *[]*http.Request) {
	t.Helper()

	var seen []*http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Clone(r.Context()))

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/organizations":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"message": "organization created",
				"data":    map[string]string{"name": "acme"},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/admin/login":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"message": "login successful",
				"data":    map[string]string{"token": "tok-123"},
			})
		case r.URL.Path == "/api/organizations/acme":
			if r.Header.Get("Authorization") != "Bearer tok-123" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"success": false,
					"message": "invalid token",
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    map[string]string{"name": "acme"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"message": "organization not found",
			})
		}
	}))
	t.Cleanup(server.Close)

	return server, &seen
}

func TestRunCreate(t *testing.T) {
	server, seen := newFakeRegistry(t)

	err := runCreate([]string{
		"--name", "acme",
		"--email", "admin@acme.test",
		"--password", "s3cret",
		"--registry", server.URL,
	})
	require.NoError(t, err)

	require.Len(t, *seen, 1)
	assert.Equal(t, http.MethodPost, (*seen)[0].Method)
	assert.Equal(t, "/api/organizations", (*seen)[0].URL.Path)
}

func TestRunCreateMissingFlags(t *testing.T) {
	err := runCreate([]string{"--name", "acme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestRunLogin(t *testing.T) {
	server, _ := newFakeRegistry(t)

	err := runLogin([]string{
		"--email", "admin@acme.test",
		"--password", "s3cret",
		"--registry", server.URL,
	})
	assert.NoError(t, err)
}

func TestRunGet(t *testing.T) {
	server, seen := newFakeRegistry(t)

	err := runGet([]string{
		"--name", "acme",
		"--token", "tok-123",
		"--registry", server.URL,
	})
	require.NoError(t, err)

	require.Len(t, *seen, 1)
	assert.Equal(t, "Bearer tok-123", (*seen)[0].Header.Get("Authorization"))
}

func TestRunGetRejectedToken(t *testing.T) {
	server, _ := newFakeRegistry(t)

	err := runGet([]string{
		"--name", "acme",
		"--token", "wrong",
		"--registry", server.URL,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestRunGetRequiresToken(t *testing.T) {
	t.Setenv("ORGMASTER_TOKEN", "")

	err := runGet([]string{"--name", "acme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bearer token")
}

func TestRunRename(t *testing.T) {
	server, seen := newFakeRegistry(t)

	err := runRename([]string{
		"--name", "acme",
		"--new-name", "globex",
		"--token", "tok-123",
		"--registry", server.URL,
	})
	require.NoError(t, err)

	require.Len(t, *seen, 1)
	assert.Equal(t, http.MethodPut, (*seen)[0].Method)
}

func TestRunDelete(t *testing.T) {
	server, seen := newFakeRegistry(t)

	err := runDelete([]string{
		"--name", "acme",
		"--token", "tok-123",
		"--yes",
		"--registry", server.URL,
	})
	require.NoError(t, err)

	require.Len(t, *seen, 1)
	assert.Equal(t, http.MethodDelete, (*seen)[0].Method)
}

func TestRunNotFoundSurfacesMessage(t *testing.T) {
	server, _ := newFakeRegistry(t)

	err := runGet([]string{
		"--name", "missing",
		"--token", "tok-123",
		"--registry", server.URL,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "organization not found")
}
