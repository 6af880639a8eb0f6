package api

import (
	"net/http"

	"github.com/platinummonkey/orgmaster/pkg/httputil"
)

// loginRequest is the POST /api/admin/login body.
type loginRequest struct {
	Email  string `json:"email"`
	Secret string `json:"password"`
}

// login handles POST /api/admin/login.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Email, "email") {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Secret, "password") {
		return
	}

	result, err := s.auth.Login(r.Context(), req.Email, req.Secret)
	if err != nil {
		s.metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		writeServiceError(w, r, err)
		return
	}

	s.metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	httputil.WriteSuccess(w, "login successful", result)
}
