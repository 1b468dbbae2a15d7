package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
)

// AuditLog logs auth and record events (user_id, IP, outcome).
func AuditLog(log zerolog.Logger, r *http.Request, event string, userID int64, username string, success bool, errMsg string) {
	ev := log.Info()
	if !success {
		ev = log.Warn()
	}
	ev.
		Str("event", event).
		Int64("user_id", userID).
		Str("username", username).
		Str("ip", getClientIP(r)).
		Str("request_id", middleware.GetReqID(r.Context())).
		Bool("success", success)
	if errMsg != "" {
		ev.Str("error", errMsg)
	}
	ev.Msg("audit")
}

// AuditEmit logs the event and, if an enqueuer is configured, hands it to the
// webhook delivery queue.
func AuditEmit(log zerolog.Logger, r *http.Request, enqueuer ports.TaskEnqueuer, event string, userID int64, username string, success bool, errMsg string) {
	AuditLog(log, r, event, userID, username, success, errMsg)
	if enqueuer != nil {
		_ = enqueuer.EnqueueWebhook(r.Context(), ports.AuditEvent{
			Event:    event,
			UserID:   userID,
			Username: username,
			IP:       getClientIP(r),
			Success:  success,
			Err:      errMsg,
		})
	}
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return r.RemoteAddr
}
