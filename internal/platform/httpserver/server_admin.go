package httpserver

import (
	"encoding/json"
	"net/http"

	adminhttp "tiebreak/contexts/identity-access/admin-auth/transport/http"
)

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminhttp.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Admin.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
