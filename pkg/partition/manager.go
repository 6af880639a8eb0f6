// Package partition implements the partition manager: creation, validation,
// rename (copy-then-drop) and destruction of per-tenant data partitions
// inside the shared backing store.
package partition

import (
	"context"

	"github.com/platinummonkey/orgmaster/pkg/observability"
	"github.com/platinummonkey/orgmaster/pkg/orgs"
)

// Manager coordinates physical partition changes. All failures surface as
// *orgs.PartitionError; callers decide whether they are fatal (create) or
// best-effort (cleanup during rollback).
type Manager struct {
	store  orgs.PartitionStore
	logger *observability.Logger
}

// NewManager creates a partition manager on top of the backing store.
func NewManager(store orgs.PartitionStore, logger *observability.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// Create allocates an empty partition with the shape-validation contract
// installed. It is idempotent: an existing partition is a successful no-op.
func (m *Manager) Create(ctx context.Context, id string) error {
	exists, err := m.store.PartitionExists(ctx, id)
	if err != nil {
		return &orgs.PartitionError{Op: "create", PartitionID: id, Err: err}
	}
	if exists {
		m.logger.WithField("partition", id).Debug("partition already exists")
		return nil
	}
	if err := m.store.CreatePartition(ctx, id); err != nil {
		return &orgs.PartitionError{Op: "create", PartitionID: id, Err: err}
	}
	m.logger.WithField("partition", id).Info("partition created")
	return nil
}

// Destroy deletes a partition and all its contents irreversibly. It is
// idempotent: a missing partition is a successful no-op.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	exists, err := m.store.PartitionExists(ctx, id)
	if err != nil {
		return &orgs.PartitionError{Op: "destroy", PartitionID: id, Err: err}
	}
	if !exists {
		return nil
	}
	if err := m.store.DropPartition(ctx, id); err != nil {
		return &orgs.PartitionError{Op: "destroy", PartitionID: id, Err: err}
	}
	m.logger.WithField("partition", id).Info("partition destroyed")
	return nil
}

// Rename moves a partition to a new identifier via copy-then-drop (the
// backing store offers no atomic rename) and returns the number of
// migrated records.
//
// If the bulk read or insert fails, the new partition may be left
// partially populated. No cleanup of the new partition is attempted: the
// catalog record has not been updated yet, so the tenant is still
// recoverable through the old partition. The error is terminal for the
// caller.
func (m *Manager) Rename(ctx context.Context, oldID, newID string) (int64, error) {
	exists, err := m.store.PartitionExists(ctx, oldID)
	if err != nil {
		return 0, &orgs.PartitionError{Op: "rename", PartitionID: oldID, Err: err}
	}
	if !exists {
		m.logger.WithField("partition", oldID).Warn("source partition does not exist, skipping migration")
		return 0, nil
	}

	if err := m.Create(ctx, newID); err != nil {
		return 0, err
	}

	records, err := m.store.ReadAllRecords(ctx, oldID)
	if err != nil {
		return 0, &orgs.PartitionError{Op: "rename", PartitionID: oldID, Err: err}
	}

	if len(records) > 0 {
		if err := m.store.InsertRecords(ctx, newID, records); err != nil {
			return 0, &orgs.PartitionError{Op: "rename", PartitionID: newID, Err: err}
		}
	}

	if err := m.store.DropPartition(ctx, oldID); err != nil {
		return 0, &orgs.PartitionError{Op: "rename", PartitionID: oldID, Err: err}
	}

	m.logger.WithField("from", oldID).
		WithField("to", newID).
		WithField("records", len(records)).
		Info("partition migrated")

	return int64(len(records)), nil
}
