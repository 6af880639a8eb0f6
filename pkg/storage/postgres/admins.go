package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/platinummonkey/orgmaster/pkg/orgs"
)

// CreateAdmin implements orgs.AdminStore.
func (s *PostgresStore) CreateAdmin(ctx context.Context, admin *orgs.Admin) error {
	query := `
		INSERT INTO admins (id, email, secret_hash, organization_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		admin.ID, admin.Email, admin.SecretHash, admin.OrganizationID, admin.Role,
		admin.CreatedAt, admin.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &orgs.ConflictError{Resource: "admin", Message: "admin email already exists"}
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// GetAdminByEmail implements orgs.AdminStore.
func (s *PostgresStore) GetAdminByEmail(ctx context.Context, email string) (*orgs.Admin, error) {
	query := `
		SELECT id, email, secret_hash, organization_id, role, created_at, updated_at
		FROM admins
		WHERE email = $1
	`
	return s.scanAdmin(s.db.QueryRowContext(ctx, query, email), email)
}

// GetAdminByID implements orgs.AdminStore.
func (s *PostgresStore) GetAdminByID(ctx context.Context, id string) (*orgs.Admin, error) {
	query := `
		SELECT id, email, secret_hash, organization_id, role, created_at, updated_at
		FROM admins
		WHERE id = $1
	`
	return s.scanAdmin(s.db.QueryRowContext(ctx, query, id), id)
}

// UpdateAdmin implements orgs.AdminStore.
func (s *PostgresStore) UpdateAdmin(ctx context.Context, admin *orgs.Admin) error {
	query := `
		UPDATE admins
		SET email = $1, secret_hash = $2, organization_id = $3, role = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(ctx, query,
		admin.Email, admin.SecretHash, admin.OrganizationID, admin.Role, admin.UpdatedAt, admin.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return &orgs.ConflictError{Resource: "admin", Message: "admin email already exists"}
		}
		return fmt.Errorf("failed to update admin: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &orgs.NotFoundError{Resource: "admin", Name: admin.ID}
	}
	return nil
}

// DeleteAdmin implements orgs.AdminStore.
func (s *PostgresStore) DeleteAdmin(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &orgs.NotFoundError{Resource: "admin", Name: id}
	}
	return nil
}

func (s *PostgresStore) scanAdmin(row *sql.Row, key string) (*orgs.Admin, error) {
	admin := &orgs.Admin{}
	err := row.Scan(&admin.ID, &admin.Email, &admin.SecretHash, &admin.OrganizationID,
		&admin.Role, &admin.CreatedAt, &admin.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &orgs.NotFoundError{Resource: "admin", Name: key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return admin, nil
}
