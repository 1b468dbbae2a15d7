package auth

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	"github.com/quangxuan98765/data-processing-api/internal/domain"
	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

type RegisterResult struct {
	User *domain.PublicUser
}

// Register creates a new active, non-privileged account. The pre-checks give
// friendly duplicate errors; the repository maps the store's unique-constraint
// violations to the same sentinels, so concurrent registrations cannot slip
// past the check.
type Register struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewRegister(users ports.UserRepository, hasher ports.PasswordHasher) *Register {
	return &Register{users: users, hasher: hasher}
}

func (uc *Register) Execute(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if strings.TrimSpace(input.Username) == "" || !emailRegex.MatchString(input.Email) {
		return nil, domerrors.ErrInvalidInput
	}
	existing, err := uc.users.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrUsernameExists
	}
	existing, err = uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrEmailExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	id, err := uc.users.Create(ctx, ports.NewUser{
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		IsStaff:      false,
		IsSuperuser:  false,
		IsActive:     true,
		DateJoined:   time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrPersistence
	}
	return &RegisterResult{User: user.Public()}, nil
}
