package api

import (
	"fmt"
	"net/http"

	"github.com/platinummonkey/orgmaster/pkg/httputil"
	"github.com/platinummonkey/orgmaster/pkg/orgs"
)

// createOrganization handles POST /api/organizations. Registration is
// public: it provisions the partition, the first administrator, and the
// catalog record in one call.
func (s *Server) createOrganization(w http.ResponseWriter, r *http.Request) {
	var req orgs.CreateRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	view, err := s.orgs.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteCreated(w, "organization created", view)
}

// getOrganization handles GET /api/organizations/{name}.
func (s *Server) getOrganization(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	view, err := s.orgs.Get(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteSuccess(w, "", view)
}

// renameOrganization handles PUT /api/organizations/{name}. The body may
// also stage administrator email and password changes alongside the
// rename.
func (s *Server) renameOrganization(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	var req orgs.RenameRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.NewName, "organization_name") {
		return
	}

	view, err := s.orgs.Rename(r.Context(), name, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteSuccess(w, "organization updated", view)
}

// deleteOrganization handles DELETE /api/organizations/{name}.
func (s *Server) deleteOrganization(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	result, err := s.orgs.Delete(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httputil.WriteSuccess(w, fmt.Sprintf("organization %s deleted", result.Name), result)
}
