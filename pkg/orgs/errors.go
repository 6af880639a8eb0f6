package orgs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the secret does not match. The two cases are deliberately
	// indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a bearer token fails verification
	// for any reason (malformed, expired, bad signature).
	ErrInvalidToken = errors.New("invalid or expired token")
)

// ValidationError indicates malformed client input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConflictError indicates a uniqueness violation on the catalog or
// credential store.
type ConflictError struct {
	Resource string // "organization" or "admin"
	Message  string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NotFoundError indicates the named resource does not exist.
type NotFoundError struct {
	Resource string
	Name     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Name)
}

// PartitionError indicates a backing-store partition operation failed.
type PartitionError struct {
	Op          string
	PartitionID string
	Err         error
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("partition %s failed for %q: %v", e.Op, e.PartitionID, e.Err)
}

func (e *PartitionError) Unwrap() error {
	return e.Err
}

// PersistenceError indicates a catalog or credential write failed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsConflict reports whether err is a uniqueness violation.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsNotFound reports whether err is a missing-resource error.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
