package auth

import (
	"context"
	"sync"
	"time"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	"github.com/quangxuan98765/data-processing-api/internal/domain"
	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
)

// fakeUserRepo is an in-memory UserRepository. Create enforces the same
// uniqueness the real store's constraints do, under a lock, so concurrency
// tests exercise the insert-fails-on-duplicate path.
type fakeUserRepo struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]*domain.User
	touchErr error
	// updateRows overrides UpdatePassword's rows-affected when >= 0.
	updateRows int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User), updateRows: -1}
}

func (f *fakeUserRepo) add(u domain.User) *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u.ID = f.nextID
	f.users[u.ID] = &u
	return &u
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) Create(_ context.Context, nu ports.NewUser) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == nu.Username {
			return 0, domerrors.ErrUsernameExists
		}
		if u.Email == nu.Email {
			return 0, domerrors.ErrEmailExists
		}
	}
	f.nextID++
	f.users[f.nextID] = &domain.User{
		ID:           f.nextID,
		Username:     nu.Username,
		Email:        nu.Email,
		FirstName:    nu.FirstName,
		LastName:     nu.LastName,
		PasswordHash: nu.PasswordHash,
		IsStaff:      nu.IsStaff,
		IsSuperuser:  nu.IsSuperuser,
		IsActive:     nu.IsActive,
		DateJoined:   nu.DateJoined,
	}
	return f.nextID, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID int64, passwordHash string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateRows >= 0 {
		return f.updateRows, nil
	}
	u, ok := f.users[userID]
	if !ok {
		return 0, nil
	}
	u.PasswordHash = passwordHash
	return 1, nil
}

func (f *fakeUserRepo) TouchLastLogin(_ context.Context, userID int64) error {
	if f.touchErr != nil {
		return f.touchErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		now := time.Now()
		u.LastLogin = &now
	}
	return nil
}

var _ ports.UserRepository = (*fakeUserRepo)(nil)

// memTokenStore is an in-memory TokenStore with real put/get/invalidate
// semantics, so revocation properties are exercised for real.
type memTokenStore struct {
	mu     sync.Mutex
	nextID int64
	byKey  map[string]*domain.AuthToken
	putErr error
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{byKey: make(map[string]*domain.AuthToken)}
}

func (s *memTokenStore) Put(_ context.Context, token string, userID int64, expiresAt time.Time) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.byKey[token] = &domain.AuthToken{
		ID:          s.nextID,
		TokenKey:    token,
		UserID:      userID,
		ExpireDate:  expiresAt,
		CreatedDate: time.Now(),
	}
	return nil
}

func (s *memTokenStore) Get(_ context.Context, token string) (*domain.AuthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.byKey[token]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (s *memTokenStore) Invalidate(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byKey, token)
	return nil
}

func (s *memTokenStore) InvalidateAll(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, rec := range s.byKey {
		if rec.UserID == userID {
			delete(s.byKey, k)
		}
	}
	return nil
}

var _ ports.TokenStore = (*memTokenStore)(nil)
