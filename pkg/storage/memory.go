package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/platinummonkey/orgmaster/pkg/orgs"
)

// MemoryStore implements orgs.Store in process memory. It is used for
// development and tests; it enforces the same uniqueness and shape
// constraints as the PostgreSQL backend.
type MemoryStore struct {
	mu sync.RWMutex

	orgsByID       map[string]*orgs.Organization
	orgIDByName    map[string]string
	adminsByID     map[string]*orgs.Admin
	adminIDByEmail map[string]string
	partitions     map[string][]orgs.Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orgsByID:       make(map[string]*orgs.Organization),
		orgIDByName:    make(map[string]string),
		adminsByID:     make(map[string]*orgs.Admin),
		adminIDByEmail: make(map[string]string),
		partitions:     make(map[string][]orgs.Record),
	}
}

// CreateOrganization implements orgs.OrganizationStore.
func (s *MemoryStore) CreateOrganization(ctx context.Context, org *orgs.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orgIDByName[org.Name]; ok {
		return &orgs.ConflictError{Resource: "organization", Message: "organization name already exists"}
	}
	for _, existing := range s.orgsByID {
		if existing.PartitionID == org.PartitionID {
			return &orgs.ConflictError{Resource: "organization", Message: "partition id already exists"}
		}
	}

	cp := *org
	s.orgsByID[org.ID] = &cp
	s.orgIDByName[org.Name] = org.ID
	return nil
}

// GetOrganizationByName implements orgs.OrganizationStore.
func (s *MemoryStore) GetOrganizationByName(ctx context.Context, name string) (*orgs.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.orgIDByName[name]
	if !ok {
		return nil, &orgs.NotFoundError{Resource: "organization", Name: name}
	}
	cp := *s.orgsByID[id]
	return &cp, nil
}

// GetOrganizationByID implements orgs.OrganizationStore.
func (s *MemoryStore) GetOrganizationByID(ctx context.Context, id string) (*orgs.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, ok := s.orgsByID[id]
	if !ok {
		return nil, &orgs.NotFoundError{Resource: "organization", Name: id}
	}
	cp := *org
	return &cp, nil
}

// UpdateOrganization implements orgs.OrganizationStore.
func (s *MemoryStore) UpdateOrganization(ctx context.Context, org *orgs.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.orgsByID[org.ID]
	if !ok {
		return &orgs.NotFoundError{Resource: "organization", Name: org.ID}
	}
	if otherID, ok := s.orgIDByName[org.Name]; ok && otherID != org.ID {
		return &orgs.ConflictError{Resource: "organization", Message: "organization name already exists"}
	}

	delete(s.orgIDByName, existing.Name)
	cp := *org
	s.orgsByID[org.ID] = &cp
	s.orgIDByName[org.Name] = org.ID
	return nil
}

// DeleteOrganization implements orgs.OrganizationStore.
func (s *MemoryStore) DeleteOrganization(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.orgsByID[id]
	if !ok {
		return &orgs.NotFoundError{Resource: "organization", Name: id}
	}
	delete(s.orgIDByName, org.Name)
	delete(s.orgsByID, id)
	return nil
}

// ListOrganizations implements orgs.OrganizationStore.
func (s *MemoryStore) ListOrganizations(ctx context.Context) ([]*orgs.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*orgs.Organization, 0, len(s.orgsByID))
	for _, org := range s.orgsByID {
		cp := *org
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CreateAdmin implements orgs.AdminStore.
func (s *MemoryStore) CreateAdmin(ctx context.Context, admin *orgs.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.adminIDByEmail[admin.Email]; ok {
		return &orgs.ConflictError{Resource: "admin", Message: "admin email already exists"}
	}
	cp := *admin
	s.adminsByID[admin.ID] = &cp
	s.adminIDByEmail[admin.Email] = admin.ID
	return nil
}

// GetAdminByEmail implements orgs.AdminStore.
func (s *MemoryStore) GetAdminByEmail(ctx context.Context, email string) (*orgs.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.adminIDByEmail[email]
	if !ok {
		return nil, &orgs.NotFoundError{Resource: "admin", Name: email}
	}
	cp := *s.adminsByID[id]
	return &cp, nil
}

// GetAdminByID implements orgs.AdminStore.
func (s *MemoryStore) GetAdminByID(ctx context.Context, id string) (*orgs.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	admin, ok := s.adminsByID[id]
	if !ok {
		return nil, &orgs.NotFoundError{Resource: "admin", Name: id}
	}
	cp := *admin
	return &cp, nil
}

// UpdateAdmin implements orgs.AdminStore.
func (s *MemoryStore) UpdateAdmin(ctx context.Context, admin *orgs.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.adminsByID[admin.ID]
	if !ok {
		return &orgs.NotFoundError{Resource: "admin", Name: admin.ID}
	}
	if otherID, ok := s.adminIDByEmail[admin.Email]; ok && otherID != admin.ID {
		return &orgs.ConflictError{Resource: "admin", Message: "admin email already exists"}
	}

	delete(s.adminIDByEmail, existing.Email)
	cp := *admin
	s.adminsByID[admin.ID] = &cp
	s.adminIDByEmail[admin.Email] = admin.ID
	return nil
}

// DeleteAdmin implements orgs.AdminStore.
func (s *MemoryStore) DeleteAdmin(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin, ok := s.adminsByID[id]
	if !ok {
		return &orgs.NotFoundError{Resource: "admin", Name: id}
	}
	delete(s.adminIDByEmail, admin.Email)
	delete(s.adminsByID, id)
	return nil
}

// CreatePartition implements orgs.PartitionStore.
func (s *MemoryStore) CreatePartition(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.partitions[id]; ok {
		return fmt.Errorf("partition %q already exists", id)
	}
	s.partitions[id] = []orgs.Record{}
	return nil
}

// DropPartition implements orgs.PartitionStore.
func (s *MemoryStore) DropPartition(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.partitions[id]; !ok {
		return fmt.Errorf("partition %q does not exist", id)
	}
	delete(s.partitions, id)
	return nil
}

// PartitionExists implements orgs.PartitionStore.
func (s *MemoryStore) PartitionExists(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.partitions[id]
	return ok, nil
}

// ListPartitions implements orgs.PartitionStore.
func (s *MemoryStore) ListPartitions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.partitions))
	for id := range s.partitions {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// ReadAllRecords implements orgs.PartitionStore.
func (s *MemoryStore) ReadAllRecords(ctx context.Context, id string) ([]orgs.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.partitions[id]
	if !ok {
		return nil, fmt.Errorf("partition %q does not exist", id)
	}
	out := make([]orgs.Record, len(records))
	copy(out, records)
	return out, nil
}

// InsertRecords implements orgs.PartitionStore. Records are validated
// against the shape contract before insertion.
func (s *MemoryStore) InsertRecords(ctx context.Context, id string, records []orgs.Record) error {
	for i, r := range records {
		if err := validateRecord(r); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.partitions[id]
	if !ok {
		return fmt.Errorf("partition %q does not exist", id)
	}
	s.partitions[id] = append(existing, records...)
	return nil
}

// CountRecords implements orgs.PartitionStore.
func (s *MemoryStore) CountRecords(ctx context.Context, id string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.partitions[id]
	if !ok {
		return 0, fmt.Errorf("partition %q does not exist", id)
	}
	return int64(len(records)), nil
}

// Ping implements orgs.Store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close implements orgs.Store.
func (s *MemoryStore) Close() error {
	return nil
}

func validateRecord(r orgs.Record) error {
	if r.Data == nil {
		return fmt.Errorf("record data is required")
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("record created_at is required")
	}
	return nil
}
