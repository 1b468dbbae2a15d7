package auth

import (
	"context"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
)

type LogoutInput struct {
	Token string
}

// Logout removes the token record. Logging out an unknown or already
// invalidated token is not an error.
type Logout struct {
	tokens ports.TokenStore
}

func NewLogout(tokens ports.TokenStore) *Logout {
	return &Logout{tokens: tokens}
}

func (uc *Logout) Execute(ctx context.Context, input LogoutInput) error {
	if input.Token == "" {
		return domerrors.ErrInvalidInput
	}
	return uc.tokens.Invalidate(ctx, input.Token)
}
