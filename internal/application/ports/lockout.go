package ports

import "context"

// LoginLockoutStore tracks failed login attempts and cooldown per username.
type LoginLockoutStore interface {
	// IsLocked returns true if the account is locked, and the remaining
	// cooldown in seconds.
	IsLocked(ctx context.Context, username string) (locked bool, retryAfterSeconds int)
	// RecordFailure records a failed login; may lock the account after N
	// failures.
	RecordFailure(ctx context.Context, username string)
	// RecordSuccess clears the failure count (call on successful login).
	RecordSuccess(ctx context.Context, username string)
}
