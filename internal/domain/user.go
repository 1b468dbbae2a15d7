package domain

import (
	"strings"
	"time"
)

// User is an account row from the auth_user table. PasswordHash always holds
// a bcrypt hash, never plaintext.
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsStaff      bool
	IsSuperuser  bool
	IsActive     bool
	DateJoined   time.Time
	LastLogin    *time.Time
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// PublicUser is the caller-facing projection of a user. It never carries the
// password hash.
type PublicUser struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	FullName    string `json:"full_name"`
}

// Public returns the caller-facing projection of u.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		FullName:    u.FullName(),
	}
}
