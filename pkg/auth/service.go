package auth

import (
	"context"

	"github.com/platinummonkey/orgmaster/pkg/observability"
	"github.com/platinummonkey/orgmaster/pkg/orgs"
)

// Directory is the slice of the backing store the session issuer needs.
type Directory interface {
	GetAdminByEmail(ctx context.Context, email string) (*orgs.Admin, error)
	GetOrganizationByID(ctx context.Context, id string) (*orgs.Organization, error)
}

// LoginResult carries the issued token and the views returned to the
// caller.
type LoginResult struct {
	Token        string          `json:"token"`
	Admin        orgs.AdminView  `json:"admin"`
	Organization OrganizationRef `json:"organization"`
}

// OrganizationRef is the minimal organization reference embedded in a
// login response.
type OrganizationRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Service validates administrator credentials and issues bearer tokens.
type Service struct {
	directory Directory
	hasher    orgs.SecretHasher
	issuer    *TokenIssuer
	logger    *observability.Logger
}

// NewService creates a session issuer.
func NewService(directory Directory, hasher orgs.SecretHasher, issuer *TokenIssuer, logger *observability.Logger) *Service {
	return &Service{
		directory: directory,
		hasher:    hasher,
		issuer:    issuer,
		logger:    logger,
	}
}

// Login validates the administrator's credentials and issues a signed,
// time-boxed token. Unknown email and wrong secret are deliberately
// indistinguishable.
func (s *Service) Login(ctx context.Context, email, secret string) (*LoginResult, error) {
	admin, err := s.directory.GetAdminByEmail(ctx, email)
	if err != nil {
		if orgs.IsNotFound(err) {
			return nil, orgs.ErrInvalidCredentials
		}
		return nil, &orgs.PersistenceError{Op: "lookup admin", Err: err}
	}

	if err := s.hasher.CompareSecret(admin.SecretHash, secret); err != nil {
		return nil, orgs.ErrInvalidCredentials
	}

	org, err := s.directory.GetOrganizationByID(ctx, admin.OrganizationID)
	if err != nil {
		if orgs.IsNotFound(err) {
			// The admin exists but its organization does not: an
			// integrity violation, not a credential problem.
			return nil, &orgs.NotFoundError{Resource: "organization", Name: admin.OrganizationID}
		}
		return nil, &orgs.PersistenceError{Op: "lookup organization", Err: err}
	}

	token, err := s.issuer.Sign(admin, org)
	if err != nil {
		return nil, &orgs.PersistenceError{Op: "sign token", Err: err}
	}

	s.logger.WithField("email", email).
		WithField("organization", org.Name).
		Info("administrator logged in")

	return &LoginResult{
		Token: token,
		Admin: orgs.AdminView{
			ID:        admin.ID,
			Email:     admin.Email,
			Role:      admin.Role,
			CreatedAt: admin.CreatedAt,
		},
		Organization: OrganizationRef{ID: org.ID, Name: org.Name},
	}, nil
}

// Verify validates a bearer token and returns its claims.
func (s *Service) Verify(token string) (*Claims, error) {
	return s.issuer.Verify(token)
}
