package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeAccountLocked
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainErr maps domain sentinels onto the HTTP surface. Anything not
// recognized is a 500 with a generic message so internals never leak.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domerrors.ErrInvalidInput):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, domerrors.ErrAccountDisabled):
		writeErr(w, http.StatusUnauthorized, ErrCodeAccountDisabled, err.Error())
	case errors.Is(err, domerrors.ErrInvalidToken):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidToken, err.Error())
	case errors.Is(err, domerrors.ErrPasswordMismatch):
		writeErr(w, http.StatusBadRequest, ErrCodePasswordMismatch, err.Error())
	case errors.Is(err, domerrors.ErrUsernameExists), errors.Is(err, domerrors.ErrEmailExists):
		writeErr(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, domerrors.ErrForbidden):
		writeErr(w, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case errors.Is(err, domerrors.ErrNotFound), errors.Is(err, domerrors.ErrUserNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}
