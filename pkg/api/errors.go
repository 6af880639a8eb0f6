package api

import (
	"errors"
	"net/http"

	"github.com/platinummonkey/orgmaster/pkg/httputil"
	"github.com/platinummonkey/orgmaster/pkg/observability"
	"github.com/platinummonkey/orgmaster/pkg/orgs"
)

// writeServiceError maps domain errors onto HTTP status codes. Unmapped
// errors collapse into a 500 with a generic message so internal detail
// never leaks to clients.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *orgs.ValidationError
	var conflictErr *orgs.ConflictError
	var notFoundErr *orgs.NotFoundError
	var partitionErr *orgs.PartitionError

	switch {
	case errors.As(err, &validationErr):
		httputil.WriteValidationError(w, validationErr.Error())
	case errors.As(err, &conflictErr):
		httputil.WriteConflict(w, conflictErr.Error())
	case errors.As(err, &notFoundErr):
		httputil.WriteNotFoundError(w, notFoundErr.Error())
	case errors.Is(err, orgs.ErrInvalidCredentials):
		httputil.WriteUnauthorized(w, "invalid credentials")
	case errors.Is(err, orgs.ErrInvalidToken):
		httputil.WriteUnauthorized(w, "invalid or expired token")
	case errors.As(err, &partitionErr):
		httputil.WriteBadGateway(w, "partition operation failed")
	default:
		observability.FromContext(r.Context()).WithError(err).Error("unhandled service error")
		httputil.WriteInternalError(w, errors.New("internal server error"))
	}
}
