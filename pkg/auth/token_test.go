package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/orgmaster/pkg/orgs"
)

func testAdminAndOrg() (*orgs.Admin, *orgs.Organization) {
	now := time.Now().UTC()
	admin := &orgs.Admin{
		ID:             "admin-1",
		Email:          "admin@acme.test",
		OrganizationID: "org-1",
		Role:           orgs.DefaultAdminRole,
		CreatedAt:      now,
	}
	org := &orgs.Organization{
		ID:          "org-1",
		Name:        "acme",
		PartitionID: "org_acme",
	}
	return admin, org
}

func TestTokenSignAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	admin, org := testAdminAndOrg()

	token, err := issuer.Sign(admin, org)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "admin@acme.test", claims.Email)
	assert.Equal(t, "org-1", claims.OrganizationID)
	assert.Equal(t, "acme", claims.OrganizationName)
	assert.Equal(t, orgs.DefaultAdminRole, claims.Role)
}

func TestTokenVerifyFailures(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	admin, org := testAdminAndOrg()

	token, err := issuer.Sign(admin, org)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
		{name: "tampered", token: token + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			assert.ErrorIs(t, err, orgs.ErrInvalidToken)
		})
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenIssuer("other-secret", time.Hour)
		_, err := other.Verify(token)
		assert.ErrorIs(t, err, orgs.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewTokenIssuer("test-secret", -time.Minute)
		tok, err := expired.Sign(admin, org)
		require.NoError(t, err)
		_, err = expired.Verify(tok)
		assert.ErrorIs(t, err, orgs.ErrInvalidToken)
	})
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(4) // minimum cost, keeps the test fast

	hash, err := hasher.HashSecret("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.NoError(t, hasher.CompareSecret(hash, "hunter2"))
	assert.Error(t, hasher.CompareSecret(hash, "wrong"))
}
