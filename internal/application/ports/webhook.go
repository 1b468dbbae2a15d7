package ports

import "context"

// AuditEvent is a single audit event for logging or webhooks.
type AuditEvent struct {
	Event    string `json:"event"` // auth.login, auth.register, record.delete, ...
	UserID   int64  `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	IP       string `json:"ip,omitempty"`
	Success  bool   `json:"success"`
	Err      string `json:"error,omitempty"`
}

// WebhookEmitter sends audit events to an external endpoint.
type WebhookEmitter interface {
	Emit(ctx context.Context, event AuditEvent) error
}
