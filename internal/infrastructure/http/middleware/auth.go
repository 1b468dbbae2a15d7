package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/quangxuan98765/data-processing-api/internal/application/auth"
)

// AuthValidator runs the full token check (signature, store record, account
// state) and sets the user in context. A token that only passes the
// cryptographic check, e.g. after logout, is rejected here.
type AuthValidator struct {
	validate *auth.ValidateToken
}

func NewAuthValidator(validate *auth.ValidateToken) *AuthValidator {
	return &AuthValidator{validate: validate}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeUnauthorized(w, "missing or invalid authorization")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		result, err := m.validate.Execute(r.Context(), auth.ValidateTokenInput{Token: token})
		if err != nil {
			writeUnauthorized(w, "invalid token")
			return
		}
		ctx := WithAuth(r.Context(), result.User, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": "unauthorized"})
}
