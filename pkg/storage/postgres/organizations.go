package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/platinummonkey/orgmaster/pkg/orgs"
)

// CreateOrganization implements orgs.OrganizationStore.
func (s *PostgresStore) CreateOrganization(ctx context.Context, org *orgs.Organization) error {
	query := `
		INSERT INTO organizations (id, name, partition_id, admin_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		org.ID, org.Name, org.PartitionID, org.AdminID, org.Status, org.CreatedAt, org.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &orgs.ConflictError{Resource: "organization", Message: "organization name already exists"}
		}
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

// GetOrganizationByName implements orgs.OrganizationStore.
func (s *PostgresStore) GetOrganizationByName(ctx context.Context, name string) (*orgs.Organization, error) {
	query := `
		SELECT id, name, partition_id, admin_id, status, created_at, updated_at
		FROM organizations
		WHERE name = $1
	`
	return s.scanOrganization(s.db.QueryRowContext(ctx, query, name), name)
}

// GetOrganizationByID implements orgs.OrganizationStore.
func (s *PostgresStore) GetOrganizationByID(ctx context.Context, id string) (*orgs.Organization, error) {
	query := `
		SELECT id, name, partition_id, admin_id, status, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`
	return s.scanOrganization(s.db.QueryRowContext(ctx, query, id), id)
}

// UpdateOrganization implements orgs.OrganizationStore.
func (s *PostgresStore) UpdateOrganization(ctx context.Context, org *orgs.Organization) error {
	query := `
		UPDATE organizations
		SET name = $1, partition_id = $2, admin_id = $3, status = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(ctx, query,
		org.Name, org.PartitionID, org.AdminID, org.Status, org.UpdatedAt, org.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return &orgs.ConflictError{Resource: "organization", Message: "organization name already exists"}
		}
		return fmt.Errorf("failed to update organization: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &orgs.NotFoundError{Resource: "organization", Name: org.ID}
	}
	return nil
}

// DeleteOrganization implements orgs.OrganizationStore.
func (s *PostgresStore) DeleteOrganization(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &orgs.NotFoundError{Resource: "organization", Name: id}
	}
	return nil
}

// ListOrganizations implements orgs.OrganizationStore.
func (s *PostgresStore) ListOrganizations(ctx context.Context) ([]*orgs.Organization, error) {
	query := `
		SELECT id, name, partition_id, admin_id, status, created_at, updated_at
		FROM organizations
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var out []*orgs.Organization
	for rows.Next() {
		org := &orgs.Organization{}
		if err := rows.Scan(&org.ID, &org.Name, &org.PartitionID, &org.AdminID,
			&org.Status, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		out = append(out, org)
	}
	return out, rows.Err()
}

func (s *PostgresStore) scanOrganization(row *sql.Row, key string) (*orgs.Organization, error) {
	org := &orgs.Organization{}
	err := row.Scan(&org.ID, &org.Name, &org.PartitionID, &org.AdminID,
		&org.Status, &org.CreatedAt, &org.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &orgs.NotFoundError{Resource: "organization", Name: key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}
