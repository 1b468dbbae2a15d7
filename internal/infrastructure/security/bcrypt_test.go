package security

import (
	"testing"

	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
)

// Cost 4 (bcrypt.MinCost) keeps the round trips fast in tests.
func newTestHasher() *BcryptHasher { return NewBcryptHasher(4) }

func TestHashVerifyRoundTrip(t *testing.T) {
	t.Parallel()
	h := newTestHasher()

	for _, pw := range []string{"Secret123!", "a", "пароль", "with spaces inside"} {
		hash, err := h.Hash(pw)
		if err != nil {
			t.Fatalf("Hash(%q) error: %v", pw, err)
		}
		if !h.Verify(pw, hash) {
			t.Errorf("Verify(%q, hash) = false, want true", pw)
		}
		if h.Verify(pw+"x", hash) {
			t.Errorf("Verify(%q+x, hash) = true, want false", pw)
		}
	}
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()
	h := newTestHasher()

	h1, err := h.Hash("same-password")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := h.Hash("same-password")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical; salt missing")
	}
}

func TestHashRejectsEmptyInput(t *testing.T) {
	t.Parallel()
	h := newTestHasher()

	for _, pw := range []string{"", "   ", "\t\n"} {
		if _, err := h.Hash(pw); err != domerrors.ErrInvalidInput {
			t.Errorf("Hash(%q) error = %v, want ErrInvalidInput", pw, err)
		}
	}
}

func TestVerifyNeverErrors(t *testing.T) {
	t.Parallel()
	h := newTestHasher()

	cases := []struct{ password, hash string }{
		{"", "anything"},
		{"anything", ""},
		{"x", "not-a-bcrypt-hash"},
		{"x", "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
	}
	for _, c := range cases {
		if h.Verify(c.password, c.hash) {
			t.Errorf("Verify(%q, %q) = true, want false", c.password, c.hash)
		}
	}
}

func TestCostOutOfRangeFallsBack(t *testing.T) {
	t.Parallel()
	if h := NewBcryptHasher(99); h.cost != DefaultCost {
		t.Errorf("cost = %d, want %d", h.cost, DefaultCost)
	}
	if h := NewBcryptHasher(0); h.cost != DefaultCost {
		t.Errorf("cost = %d, want %d", h.cost, DefaultCost)
	}
}
