package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
)

func TestRegisterSuccess(t *testing.T) {
	t.Parallel()
	users, _, hasher, _ := newAuthFixture(t)
	uc := NewRegister(users, hasher)

	res, err := uc.Execute(context.Background(), RegisterInput{
		Username:  "alice",
		Password:  "Secret123!",
		FirstName: "Alice",
		LastName:  "Nguyen",
		Email:     "a@x.com",
	})
	require.NoError(t, err)
	require.NotZero(t, res.User.ID)
	require.Equal(t, "Alice Nguyen", res.User.FullName)
	require.False(t, res.User.IsStaff)
	require.False(t, res.User.IsSuperuser)

	// The stored password is a hash that verifies, never the plaintext.
	stored, err := users.GetByID(context.Background(), res.User.ID)
	require.NoError(t, err)
	require.NotEqual(t, "Secret123!", stored.PasswordHash)
	require.True(t, hasher.Verify("Secret123!", stored.PasswordHash))
	require.True(t, stored.IsActive)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()
	users, _, hasher, _ := newAuthFixture(t)
	seedUser(t, users, hasher, "alice", "pw-one", true)
	uc := NewRegister(users, hasher)

	_, err := uc.Execute(context.Background(), RegisterInput{
		Username: "alice", Password: "pw-two", Email: "other@x.com",
	})
	require.ErrorIs(t, err, domerrors.ErrUsernameExists)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	users, _, hasher, _ := newAuthFixture(t)
	seedUser(t, users, hasher, "alice", "pw", true) // email alice@x.com
	uc := NewRegister(users, hasher)

	_, err := uc.Execute(context.Background(), RegisterInput{
		Username: "bob", Password: "pw", Email: "alice@x.com",
	})
	require.ErrorIs(t, err, domerrors.ErrEmailExists)
}

func TestRegisterInvalidInput(t *testing.T) {
	t.Parallel()
	users, _, hasher, _ := newAuthFixture(t)
	uc := NewRegister(users, hasher)

	cases := []RegisterInput{
		{Username: "", Password: "pw", Email: "a@x.com"},
		{Username: "a", Password: "pw", Email: "not-an-email"},
		{Username: "a", Password: "pw", Email: ""},
	}
	for _, in := range cases {
		_, err := uc.Execute(context.Background(), in)
		require.ErrorIs(t, err, domerrors.ErrInvalidInput)
	}

	// Empty password is rejected by the hasher.
	_, err := uc.Execute(context.Background(), RegisterInput{Username: "a", Password: "   ", Email: "a@x.com"})
	require.ErrorIs(t, err, domerrors.ErrInvalidInput)
}

// Concurrent registrations race past the pre-check; the store-level
// uniqueness (modelled by the fake's locked Create) must let exactly one win.
func TestRegisterConcurrentSameUsername(t *testing.T) {
	t.Parallel()
	users, _, hasher, _ := newAuthFixture(t)
	uc := NewRegister(users, hasher)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), RegisterInput{
				Username: "shared", Password: "Secret123!", Email: "shared@x.com",
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, domerrors.ErrUsernameExists)
		}
	}
	require.Equal(t, 1, successes)

	u, err := users.GetByUsername(context.Background(), "shared")
	require.NoError(t, err)
	require.NotNil(t, u)
}
