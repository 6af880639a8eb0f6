package orgs

import (
	"context"
	"time"
)

// PartitionPrefix is prepended to a normalized organization name to form
// its partition identifier.
const PartitionPrefix = "org_"

// OrgStatus represents organization status
type OrgStatus string

const (
	OrgStatusActive    OrgStatus = "active"
	OrgStatusInactive  OrgStatus = "inactive"
	OrgStatusSuspended OrgStatus = "suspended"
)

// Organization is the catalog record for one tenant. Name and PartitionID
// are each globally unique, and PartitionID is always PartitionPrefix+Name
// except mid-rename.
type Organization struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PartitionID string    `json:"partition_id"`
	AdminID     string    `json:"admin_id"`
	Status      OrgStatus `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PartitionIDFor returns the partition identifier for a normalized
// organization name.
func PartitionIDFor(name string) string {
	return PartitionPrefix + name
}

// Admin is the administrator identity record owning exactly one
// organization.
type Admin struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	SecretHash     string    `json:"-"`
	OrganizationID string    `json:"organization_id"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultAdminRole is assigned to the administrator created with a new
// organization.
const DefaultAdminRole = "admin"

// AdminView is the administrator projection exposed by read operations.
// It never carries the secret hash.
type AdminView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// OrganizationView is the organization joined with minimal administrator
// fields, returned by Create, Get and Rename.
type OrganizationView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PartitionID string    `json:"partition_id"`
	Status      OrgStatus `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Admin       AdminView `json:"admin"`
}

// Record is the minimal shape contract for documents stored inside a
// partition.
type Record struct {
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

// CreateRequest carries the inputs for organization registration.
type CreateRequest struct {
	Name   string `json:"organization_name"`
	Email  string `json:"email"`
	Secret string `json:"password"`
}

// RenameRequest carries the inputs for organization rename/update. Email
// and Secret are optional administrator changes staged with the rename.
type RenameRequest struct {
	NewName string `json:"organization_name"`
	Email   string `json:"email,omitempty"`
	Secret  string `json:"password,omitempty"`
}

// OrganizationStore is the catalog collaborator. Implementations must
// enforce uniqueness on name and partition id and surface violations as
// *ConflictError.
type OrganizationStore interface {
	CreateOrganization(ctx context.Context, org *Organization) error
	GetOrganizationByName(ctx context.Context, name string) (*Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*Organization, error)
	UpdateOrganization(ctx context.Context, org *Organization) error
	DeleteOrganization(ctx context.Context, id string) error
	ListOrganizations(ctx context.Context) ([]*Organization, error)
}

// AdminStore is the credential collaborator. Implementations must enforce
// uniqueness on email and surface violations as *ConflictError.
type AdminStore interface {
	CreateAdmin(ctx context.Context, admin *Admin) error
	GetAdminByEmail(ctx context.Context, email string) (*Admin, error)
	GetAdminByID(ctx context.Context, id string) (*Admin, error)
	UpdateAdmin(ctx context.Context, admin *Admin) error
	DeleteAdmin(ctx context.Context, id string) error
}

// PartitionStore is the physical partition collaborator inside the shared
// backing store.
type PartitionStore interface {
	CreatePartition(ctx context.Context, id string) error
	DropPartition(ctx context.Context, id string) error
	PartitionExists(ctx context.Context, id string) (bool, error)
	ListPartitions(ctx context.Context) ([]string, error)
	ReadAllRecords(ctx context.Context, id string) ([]Record, error)
	InsertRecords(ctx context.Context, id string, records []Record) error
	CountRecords(ctx context.Context, id string) (int64, error)
}

// Store is the full backing-store contract consumed by the orchestrator.
type Store interface {
	OrganizationStore
	AdminStore
	PartitionStore

	Ping(ctx context.Context) error
	Close() error
}

// SecretHasher is the one-way hashing collaborator for administrator
// secrets.
type SecretHasher interface {
	HashSecret(secret string) (string, error)
	CompareSecret(hash, secret string) error
}

// PartitionManager coordinates physical partition changes for the
// orchestrator.
type PartitionManager interface {
	Create(ctx context.Context, id string) error
	Destroy(ctx context.Context, id string) error
	Rename(ctx context.Context, oldID, newID string) (int64, error)
}

// DeleteResult confirms a completed organization deletion.
type DeleteResult struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}
