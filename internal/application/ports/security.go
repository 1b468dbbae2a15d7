package ports

import (
	"time"

	"github.com/quangxuan98765/data-processing-api/internal/domain"
)

// PasswordHasher hashes and verifies passwords (bcrypt).
type PasswordHasher interface {
	// Hash returns a salted hash; every call produces a different output for
	// the same input. Fails on empty or whitespace-only plaintext.
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. Malformed hashes and
	// mismatches are indistinguishable: both return false, never an error.
	Verify(password, hash string) bool
}

// TokenIssuer signs and validates bearer tokens (HS256 JWT).
type TokenIssuer interface {
	// Issue returns a signed token carrying the user's identity claims.
	Issue(user *domain.User) (string, error)
	// Expiry returns the expiry instant a token issued now would carry.
	Expiry() time.Time
	// Validate checks signature, issuer, audience and expiry, and extracts
	// the user id. Fails closed: any defect yields 0 and an error.
	Validate(token string) (int64, error)
}
