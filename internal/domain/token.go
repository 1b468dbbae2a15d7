package domain

import "time"

// AuthToken is a server-side record of an issued bearer token. The token key
// is immutable once written; only its presence in the store and its expiry
// decide liveness.
type AuthToken struct {
	ID          int64
	TokenKey    string
	UserID      int64
	ExpireDate  time.Time
	CreatedDate time.Time
}

// Live reports whether the token record has not yet expired at t.
func (a *AuthToken) Live(t time.Time) bool {
	return a.ExpireDate.After(t)
}
