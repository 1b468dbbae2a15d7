package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/quangxuan98765/data-processing-api/internal/application/auth"
	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
	"github.com/quangxuan98765/data-processing-api/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	register       *auth.Register
	login          *auth.Login
	logout         *auth.Logout
	changePassword *auth.ChangePassword
	validateToken  *auth.ValidateToken
	lockout        ports.LoginLockoutStore
	enqueuer       ports.TaskEnqueuer
	validate       *validator.Validate
	log            zerolog.Logger
}

func NewAuthHandler(register *auth.Register, login *auth.Login, logout *auth.Logout, changePassword *auth.ChangePassword, validateToken *auth.ValidateToken, lockout ports.LoginLockoutStore, enqueuer ports.TaskEnqueuer, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register:       register,
		login:          login,
		logout:         logout,
		changePassword: changePassword,
		validateToken:  validateToken,
		lockout:        lockout,
		enqueuer:       enqueuer,
		validate:       validator.New(),
		log:            log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username  string `json:"username" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8,max=128"`
		Email     string `json:"email" validate:"required,email,max=254"`
		FirstName string `json:"first_name" validate:"max=150"`
		LastName  string `json:"last_name" validate:"max=150"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	username := SanitizeUsername(body.Username)
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if username == "" || email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid username, email or password length")
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterInput{
		Username:  username,
		Password:  password,
		Email:     email,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	})
	if err != nil {
		AuditEmit(h.log, r, h.enqueuer, "auth.register", 0, username, false, err.Error())
		middleware.RecordAuthAttempt("register", false)
		if errors.Is(err, domerrors.ErrUsernameExists) || errors.Is(err, domerrors.ErrEmailExists) ||
			errors.Is(err, domerrors.ErrInvalidInput) {
			writeDomainErr(w, err)
			return
		}
		h.log.Error().Err(err).Msg("register failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditEmit(h.log, r, h.enqueuer, "auth.register", result.User.ID, username, true, "")
	middleware.RecordAuthAttempt("register", true)
	writeJSON(w, http.StatusCreated, result.User)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username" validate:"required,max=150"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	username := SanitizeUsername(body.Username)
	password := SanitizePassword(body.Password)
	if username == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid username or password length")
		return
	}
	if h.lockout != nil {
		if locked, retryAfter := h.lockout.IsLocked(r.Context(), username); locked {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeErr(w, http.StatusTooManyRequests, ErrCodeAccountLocked, "too many failed attempts")
			return
		}
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Username: username,
		Password: password,
	})
	if err != nil {
		if h.lockout != nil && errors.Is(err, domerrors.ErrInvalidCredentials) {
			h.lockout.RecordFailure(r.Context(), username)
		}
		AuditEmit(h.log, r, h.enqueuer, "auth.login", 0, username, false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		if errors.Is(err, domerrors.ErrInvalidCredentials) || errors.Is(err, domerrors.ErrAccountDisabled) ||
			errors.Is(err, domerrors.ErrInvalidInput) {
			writeDomainErr(w, err)
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	if h.lockout != nil {
		h.lockout.RecordSuccess(r.Context(), username)
	}
	AuditEmit(h.log, r, h.enqueuer, "auth.login", result.User.ID, username, true, "")
	middleware.RecordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user":       result.User,
	})
}

// Logout invalidates the token the request authenticated with. Requires JWT.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	token := middleware.TokenFromContext(r.Context())
	if user == nil || token == "" {
		writeErr(w, http.StatusUnauthorized, "", "authentication required")
		return
	}
	if err := h.logout.Execute(r.Context(), auth.LogoutInput{Token: token}); err != nil {
		h.log.Error().Err(err).Msg("logout failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditEmit(h.log, r, h.enqueuer, "auth.logout", user.ID, user.Username, true, "")
	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword verifies the current password, stores the new hash and
// revokes every session the user holds, this one included.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "", "authentication required")
		return
	}
	var body struct {
		CurrentPassword string `json:"current_password" validate:"required,max=128"`
		NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	err := h.changePassword.Execute(r.Context(), auth.ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: SanitizePassword(body.CurrentPassword),
		NewPassword:     SanitizePassword(body.NewPassword),
	})
	if err != nil {
		AuditEmit(h.log, r, h.enqueuer, "auth.change_password", user.ID, user.Username, false, err.Error())
		if errors.Is(err, domerrors.ErrPasswordMismatch) || errors.Is(err, domerrors.ErrUserNotFound) {
			writeDomainErr(w, err)
			return
		}
		h.log.Error().Err(err).Msg("change password failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditEmit(h.log, r, h.enqueuer, "auth.change_password", user.ID, user.Username, true, "")
	writeJSON(w, http.StatusOK, map[string]string{"message": "password changed; all sessions revoked"})
}

// Validate reports whether a bearer token is fully live: signature, store
// record and account state all checked.
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token" validate:"required,max=2048"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.validateToken.Execute(r.Context(), auth.ValidateTokenInput{Token: body.Token})
	if err != nil {
		if errors.Is(err, domerrors.ErrInvalidToken) {
			writeErr(w, http.StatusUnauthorized, ErrCodeInvalidToken, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("token validation failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user":  result.User,
	})
}
