package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	"github.com/quangxuan98765/data-processing-api/internal/domain"
	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
)

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.PublicUser
}

// Login verifies credentials, mints a bearer token and records it in the
// token store. Unknown username and wrong password are indistinguishable to
// the caller.
type Login struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
	tokens ports.TokenStore
	log    zerolog.Logger
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, tokens ports.TokenStore, log zerolog.Logger) *Login {
	return &Login{
		users:  users,
		hasher: hasher,
		issuer: issuer,
		tokens: tokens,
		log:    log,
	}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if strings.TrimSpace(input.Username) == "" || input.Password == "" {
		return nil, domerrors.ErrInvalidInput
	}
	user, err := uc.users.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domerrors.ErrAccountDisabled
	}
	token, err := uc.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	expiresAt := uc.issuer.Expiry()
	// An unrecorded token could not be revoked by logout or password change,
	// so a store failure fails the whole login.
	if err := uc.tokens.Put(ctx, token, user.ID, expiresAt); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	if err := uc.users.TouchLastLogin(ctx, user.ID); err != nil {
		uc.log.Warn().Err(err).Int64("user_id", user.ID).Msg("last-login update failed")
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Public(),
	}, nil
}
