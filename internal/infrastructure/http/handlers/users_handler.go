package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/quangxuan98765/data-processing-api/internal/infrastructure/http/middleware"
)

type UsersHandler struct {
	log zerolog.Logger
}

func NewUsersHandler(log zerolog.Logger) *UsersHandler {
	return &UsersHandler{log: log}
}

// Me returns the authenticated user's profile.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "", "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
