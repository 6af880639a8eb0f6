package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/platinummonkey/orgmaster/pkg/orgs"
)

// Claims is the JWT payload issued on login.
type Claims struct {
	AdminID          string `json:"admin_id"`
	Email            string `json:"email"`
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	Role             string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies time-boxed HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a token issuer with the given signing secret and
// token lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Sign issues a signed token for the given administrator and organization.
func (t *TokenIssuer) Sign(admin *orgs.Admin, org *orgs.Organization) (string, error) {
	now := time.Now()
	claims := Claims{
		AdminID:          admin.ID,
		Email:            admin.Email,
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
		Role:             admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify validates the signature and expiry of a token and returns its
// claims. Every verification failure collapses into orgs.ErrInvalidToken
// so callers cannot tell which check failed.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, orgs.ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, orgs.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, orgs.ErrInvalidToken
	}
	return claims, nil
}
