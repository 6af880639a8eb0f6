package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/orgmaster/pkg/auth"
	"github.com/platinummonkey/orgmaster/pkg/observability"
	"github.com/platinummonkey/orgmaster/pkg/orgs"
	"github.com/platinummonkey/orgmaster/pkg/partition"
	"github.com/platinummonkey/orgmaster/pkg/storage"
)

type testEnv struct {
	handler http.Handler
	store   *storage.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := storage.NewMemoryStore()
	logger := observability.NewLogger(observability.ErrorLevel, io.Discard)
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	hasher := auth.NewBcryptHasher(4)
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	orgService := orgs.NewService(store, partition.NewManager(store, logger), hasher, logger, metrics)
	authService := auth.NewService(store, hasher, issuer, logger)

	server := NewServer(orgService, authService, logger, metrics)
	return &testEnv{handler: server.Handler(), store: store}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) register(t *testing.T, name, email string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/organizations", "", map[string]string{
		"organization_name": name,
		"email":             email,
		"password":          "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{
		"email":    email,
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestCreateOrganizationEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/organizations", "", map[string]string{
		"organization_name": "Acme",
		"email":             "admin@acme.test",
		"password":          "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Name        string `json:"name"`
			PartitionID string `json:"partition_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "acme", resp.Data.Name)
	assert.Equal(t, "org_acme", resp.Data.PartitionID)
}

func TestCreateOrganizationEndpointErrors(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "acme", "admin@acme.test")

	tests := []struct {
		name     string
		body     map[string]string
		expected int
	}{
		{
			name:     "invalid name",
			body:     map[string]string{"organization_name": "bad name!", "email": "a@b.test", "password": "x"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "missing password",
			body:     map[string]string{"organization_name": "other", "email": "a@b.test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "duplicate name",
			body:     map[string]string{"organization_name": "acme", "email": "x@y.test", "password": "x"},
			expected: http.StatusConflict,
		},
		{
			name:     "duplicate email",
			body:     map[string]string{"organization_name": "other", "email": "admin@acme.test", "password": "x"},
			expected: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/organizations", "", tt.body)
			assert.Equal(t, tt.expected, rec.Code, rec.Body.String())
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "acme", "admin@acme.test")

	t.Run("success", func(t *testing.T) {
		token := env.login(t, "admin@acme.test")
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{
			"email":    "admin@acme.test",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{
			"email":    "ghost@acme.test",
			"password": "s3cret",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetOrganizationEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "acme", "admin@acme.test")
	token := env.login(t, "admin@acme.test")

	t.Run("requires token", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/organizations/acme", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects bad token", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/organizations/acme", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("found", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/organizations/acme", token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			Data struct {
				Name  string `json:"name"`
				Admin struct {
					Email string `json:"email"`
				} `json:"admin"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "acme", resp.Data.Name)
		assert.Equal(t, "admin@acme.test", resp.Data.Admin.Email)
	})

	t.Run("not found", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/organizations/ghost", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRenameOrganizationEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "acme", "admin@acme.test")
	token := env.login(t, "admin@acme.test")

	rec := env.do(t, http.MethodPut, "/api/organizations/acme", token, map[string]string{
		"organization_name": "globex",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			Name        string `json:"name"`
			PartitionID string `json:"partition_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "globex", resp.Data.Name)
	assert.Equal(t, "org_globex", resp.Data.PartitionID)

	t.Run("old name is gone", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/organizations/acme", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing new name", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/organizations/globex", token, map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteOrganizationEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "acme", "admin@acme.test")
	token := env.login(t, "admin@acme.test")

	rec := env.do(t, http.MethodDelete, "/api/organizations/acme", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	t.Run("second delete is a 404", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/api/organizations/acme", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestOpsMux(t *testing.T) {
	store := storage.NewMemoryStore()
	logger := observability.NewLogger(observability.ErrorLevel, io.Discard)
	registry := prometheus.NewRegistry()
	observability.NewMetrics(registry)

	mux := NewOpsMux(store, registry, logger)

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status"`)
	})

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
