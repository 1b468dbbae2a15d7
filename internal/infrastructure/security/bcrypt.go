package security

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
)

// DefaultCost is the bcrypt work factor. 12 keeps verification around the
// 100ms mark on current hardware.
const DefaultCost = 12

// BcryptHasher implements ports.PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost. Costs outside
// bcrypt's valid range fall back to DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", domerrors.ErrInvalidInput
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify returns false for empty inputs and malformed or foreign hash
// formats. Mismatch and malformed input are indistinguishable to the caller.
func (h *BcryptHasher) Verify(password, hash string) bool {
	if strings.TrimSpace(password) == "" || strings.TrimSpace(hash) == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var _ ports.PasswordHasher = (*BcryptHasher)(nil)
