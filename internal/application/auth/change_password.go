package auth

import (
	"context"
	"fmt"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
)

type ChangePasswordInput struct {
	UserID          int64
	CurrentPassword string
	NewPassword     string
}

// ChangePassword replaces the stored hash after verifying the current
// password, then revokes every token the user holds so all sessions must log
// in again.
type ChangePassword struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenStore
}

func NewChangePassword(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenStore) *ChangePassword {
	return &ChangePassword{users: users, hasher: hasher, tokens: tokens}
}

func (uc *ChangePassword) Execute(ctx context.Context, input ChangePasswordInput) error {
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domerrors.ErrUserNotFound
	}
	if !uc.hasher.Verify(input.CurrentPassword, user.PasswordHash) {
		return domerrors.ErrPasswordMismatch
	}
	hash, err := uc.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	rows, err := uc.users.UpdatePassword(ctx, user.ID, hash)
	if err != nil {
		return err
	}
	// Zero rows means the row vanished between the read and the write.
	if rows == 0 {
		return domerrors.ErrPersistence
	}
	if err := uc.tokens.InvalidateAll(ctx, user.ID); err != nil {
		return fmt.Errorf("invalidate tokens: %w", err)
	}
	return nil
}
