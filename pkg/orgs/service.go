package orgs

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/platinummonkey/orgmaster/pkg/observability"
)

// namePattern is the allowed shape of a normalized organization name.
var namePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// NormalizeName lowercases and trims an organization name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateName checks a normalized organization name against the allowed
// pattern.
func ValidateName(name string) error {
	if name == "" {
		return &ValidationError{Field: "organization_name", Message: "organization name is required"}
	}
	if !namePattern.MatchString(name) {
		return &ValidationError{
			Field:   "organization_name",
			Message: "organization name can only contain lowercase letters, numbers, hyphens, and underscores",
		}
	}
	return nil
}

// Service orchestrates the tenant lifecycle across the catalog store, the
// credential store and the partition manager. Multi-step operations carry
// compensation logic; the backing store's unique constraints are the
// concurrency guard (two racing Creates both pass the existence check, the
// loser surfaces the constraint violation as *ConflictError).
type Service struct {
	store      Store
	partitions PartitionManager
	hasher     SecretHasher
	logger     *observability.Logger
	metrics    *observability.Metrics
}

// NewService creates a tenant lifecycle orchestrator. metrics may be nil.
func NewService(store Store, partitions PartitionManager, hasher SecretHasher, logger *observability.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		store:      store,
		partitions: partitions,
		hasher:     hasher,
		logger:     logger,
		metrics:    metrics,
	}
}

// Create registers a new organization: it provisions the partition first,
// then persists the administrator and the catalog record. Any persistence
// failure destroys the partition and removes a half-saved administrator
// before propagating the original error.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*OrganizationView, error) {
	view, err := s.create(ctx, req)
	s.recordOp("create", err)
	return view, err
}

func (s *Service) create(ctx context.Context, req CreateRequest) (*OrganizationView, error) {
	name := NormalizeName(req.Name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if req.Secret == "" {
		return nil, &ValidationError{Field: "password", Message: "password is required"}
	}

	if _, err := s.store.GetOrganizationByName(ctx, name); err == nil {
		return nil, &ConflictError{Resource: "organization", Message: "organization name already exists"}
	} else if !IsNotFound(err) {
		return nil, &PersistenceError{Op: "lookup organization", Err: err}
	}
	if _, err := s.store.GetAdminByEmail(ctx, req.Email); err == nil {
		return nil, &ConflictError{Resource: "admin", Message: "admin email already exists"}
	} else if !IsNotFound(err) {
		return nil, &PersistenceError{Op: "lookup admin", Err: err}
	}

	partitionID := PartitionIDFor(name)
	if err := s.partitions.Create(ctx, partitionID); err != nil {
		return nil, err
	}

	secretHash, err := s.hasher.HashSecret(req.Secret)
	if err != nil {
		s.compensatePartition(ctx, partitionID)
		return nil, &PersistenceError{Op: "hash secret", Err: err}
	}

	// Identities are allocated up front so the administrator and the
	// organization can reference each other before either is durable.
	now := time.Now().UTC()
	adminID := uuid.NewString()
	orgID := uuid.NewString()

	admin := &Admin{
		ID:             adminID,
		Email:          req.Email,
		SecretHash:     secretHash,
		OrganizationID: orgID,
		Role:           DefaultAdminRole,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	org := &Organization{
		ID:          orgID,
		Name:        name,
		PartitionID: partitionID,
		AdminID:     adminID,
		Status:      OrgStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		s.compensatePartition(ctx, partitionID)
		if IsConflict(err) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "create admin", Err: err}
	}
	if err := s.store.CreateOrganization(ctx, org); err != nil {
		s.compensateAdmin(ctx, adminID)
		s.compensatePartition(ctx, partitionID)
		if IsConflict(err) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "create organization", Err: err}
	}

	s.logger.WithField("organization", name).
		WithField("partition", partitionID).
		Info("organization created")

	return newView(org, admin), nil
}

// Get returns the organization joined with minimal administrator fields.
func (s *Service) Get(ctx context.Context, name string) (*OrganizationView, error) {
	org, err := s.store.GetOrganizationByName(ctx, NormalizeName(name))
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "lookup organization", Err: err}
	}
	admin, err := s.store.GetAdminByID(ctx, org.AdminID)
	if err != nil {
		// A catalog record without its administrator is an integrity
		// violation, not a client fault.
		return nil, &PersistenceError{Op: "load admin", Err: err}
	}
	return newView(org, admin), nil
}

// Rename moves an organization to a new name (migrating its partition via
// copy-then-drop) and optionally stages administrator email/secret changes.
// The catalog record is persisted immediately after the physical move
// succeeds to keep the inconsistency window as small as possible.
func (s *Service) Rename(ctx context.Context, oldName string, req RenameRequest) (*OrganizationView, error) {
	view, err := s.rename(ctx, oldName, req)
	s.recordOp("rename", err)
	return view, err
}

func (s *Service) rename(ctx context.Context, oldName string, req RenameRequest) (*OrganizationView, error) {
	oldNorm := NormalizeName(oldName)
	org, err := s.store.GetOrganizationByName(ctx, oldNorm)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "lookup organization", Err: err}
	}

	newNorm := oldNorm
	if req.NewName != "" {
		newNorm = NormalizeName(req.NewName)
		if err := ValidateName(newNorm); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()

	if newNorm != oldNorm {
		if _, err := s.store.GetOrganizationByName(ctx, newNorm); err == nil {
			return nil, &ConflictError{Resource: "organization", Message: "new organization name already exists"}
		} else if !IsNotFound(err) {
			return nil, &PersistenceError{Op: "lookup organization", Err: err}
		}

		newPartition := PartitionIDFor(newNorm)
		migrated, err := s.partitions.Rename(ctx, org.PartitionID, newPartition)
		if err != nil {
			// The new partition may be partially populated, but the
			// catalog still points at the old partition, so the tenant
			// remains recoverable. No cleanup here.
			return nil, err
		}

		oldPartition := org.PartitionID
		org.Name = newNorm
		org.PartitionID = newPartition
		org.UpdatedAt = now

		if err := s.store.UpdateOrganization(ctx, org); err != nil {
			// Known consistency gap: the partition has already moved
			// while the catalog still names the old partition.
			s.logger.WithError(err).
				WithField("old_partition", oldPartition).
				WithField("new_partition", newPartition).
				Warn("catalog update failed after partition migration; catalog references the old partition")
			if IsConflict(err) {
				return nil, err
			}
			return nil, &PersistenceError{Op: "update organization", Err: err}
		}

		s.logger.WithField("organization", newNorm).
			WithField("migrated_records", migrated).
			Info("organization renamed")
	}

	admin, err := s.store.GetAdminByID(ctx, org.AdminID)
	if err != nil {
		return nil, &PersistenceError{Op: "load admin", Err: err}
	}

	adminChanged := false
	if req.Email != "" && req.Email != admin.Email {
		if err := validateEmail(req.Email); err != nil {
			return nil, err
		}
		existing, err := s.store.GetAdminByEmail(ctx, req.Email)
		if err == nil && existing.ID != admin.ID {
			return nil, &ConflictError{Resource: "admin", Message: "email already in use"}
		} else if err != nil && !IsNotFound(err) {
			return nil, &PersistenceError{Op: "lookup admin", Err: err}
		}
		admin.Email = req.Email
		adminChanged = true
	}
	if req.Secret != "" {
		secretHash, err := s.hasher.HashSecret(req.Secret)
		if err != nil {
			return nil, &PersistenceError{Op: "hash secret", Err: err}
		}
		admin.SecretHash = secretHash
		adminChanged = true
	}

	if adminChanged {
		admin.UpdatedAt = now
		if err := s.store.UpdateAdmin(ctx, admin); err != nil {
			if IsConflict(err) {
				return nil, err
			}
			return nil, &PersistenceError{Op: "update admin", Err: err}
		}
		if newNorm == oldNorm {
			org.UpdatedAt = now
			if err := s.store.UpdateOrganization(ctx, org); err != nil {
				return nil, &PersistenceError{Op: "update organization", Err: err}
			}
		}
	}

	return newView(org, admin), nil
}

// Delete destroys the organization's partition (best-effort), then removes
// the administrator and the catalog record. Deletion is forward-only;
// there is no compensation on partial failure.
func (s *Service) Delete(ctx context.Context, name string) (*DeleteResult, error) {
	res, err := s.delete(ctx, name)
	s.recordOp("delete", err)
	return res, err
}

func (s *Service) delete(ctx context.Context, name string) (*DeleteResult, error) {
	norm := NormalizeName(name)
	org, err := s.store.GetOrganizationByName(ctx, norm)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "lookup organization", Err: err}
	}

	if err := s.partitions.Destroy(ctx, org.PartitionID); err != nil {
		s.logger.WithError(err).
			WithField("partition", org.PartitionID).
			Warn("partition destroy failed during delete; continuing")
	}

	if err := s.store.DeleteAdmin(ctx, org.AdminID); err != nil && !IsNotFound(err) {
		s.logger.WithError(err).
			WithField("admin_id", org.AdminID).
			Warn("admin delete failed during organization delete; continuing")
	}

	if err := s.store.DeleteOrganization(ctx, org.ID); err != nil {
		return nil, &PersistenceError{Op: "delete organization", Err: err}
	}

	s.logger.WithField("organization", norm).Info("organization deleted")

	return &DeleteResult{
		Name:    norm,
		Message: "organization and associated data deleted successfully",
	}, nil
}

// compensatePartition destroys a partition after a failed create flow.
// Errors are swallowed so the original failure is never masked.
func (s *Service) compensatePartition(ctx context.Context, partitionID string) {
	if err := s.partitions.Destroy(ctx, partitionID); err != nil {
		s.logger.WithError(err).
			WithField("partition", partitionID).
			Warn("partition cleanup failed during compensation")
	}
}

// compensateAdmin removes an administrator persisted before the
// organization save failed. Errors are swallowed.
func (s *Service) compensateAdmin(ctx context.Context, adminID string) {
	if err := s.store.DeleteAdmin(ctx, adminID); err != nil {
		s.logger.WithError(err).
			WithField("admin_id", adminID).
			Warn("admin cleanup failed during compensation")
	}
}

func (s *Service) recordOp(op string, err error) {
	if s.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.TenantOperationsTotal.WithLabelValues(op, status).Inc()
}

func newView(org *Organization, admin *Admin) *OrganizationView {
	return &OrganizationView{
		ID:          org.ID,
		Name:        org.Name,
		PartitionID: org.PartitionID,
		Status:      org.Status,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
		Admin: AdminView{
			ID:        admin.ID,
			Email:     admin.Email,
			Role:      admin.Role,
			CreatedAt: admin.CreatedAt,
		},
	}
}

func validateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Message: "email is not valid"}
	}
	return nil
}
