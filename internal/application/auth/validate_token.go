package auth

import (
	"context"
	"time"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	"github.com/quangxuan98765/data-processing-api/internal/domain"
	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
)

type ValidateTokenInput struct {
	Token string
}

type ValidateTokenResult struct {
	User *domain.PublicUser
}

// ValidateToken checks a bearer token end to end: cryptographic envelope,
// store liveness, and account state. Cryptographic validity alone is not
// enough; logout and password change revoke tokens before their natural
// expiry, and only the store knows about that.
type ValidateToken struct {
	issuer ports.TokenIssuer
	tokens ports.TokenStore
	users  ports.UserRepository
}

func NewValidateToken(issuer ports.TokenIssuer, tokens ports.TokenStore, users ports.UserRepository) *ValidateToken {
	return &ValidateToken{issuer: issuer, tokens: tokens, users: users}
}

func (uc *ValidateToken) Execute(ctx context.Context, input ValidateTokenInput) (*ValidateTokenResult, error) {
	if input.Token == "" {
		return nil, domerrors.ErrInvalidToken
	}
	userID, err := uc.issuer.Validate(input.Token)
	if err != nil {
		return nil, domerrors.ErrInvalidToken
	}
	rec, err := uc.tokens.Get(ctx, input.Token)
	if err != nil {
		return nil, err
	}
	if rec == nil || !rec.Live(time.Now()) || rec.UserID != userID {
		return nil, domerrors.ErrInvalidToken
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domerrors.ErrInvalidToken
	}
	return &ValidateTokenResult{User: user.Public()}, nil
}
