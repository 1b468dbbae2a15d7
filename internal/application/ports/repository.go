package ports

import (
	"context"
	"time"

	"github.com/quangxuan98765/data-processing-api/internal/domain"
)

// NewUser carries the fields needed to create an account.
type NewUser struct {
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsStaff      bool
	IsSuperuser  bool
	IsActive     bool
	DateJoined   time.Time
}

// UserRepository defines persistence for accounts. Lookups return nil (not an
// error) when no row matches.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// Create inserts the account and returns its id. Duplicate username or
	// email surface as domain/errors sentinels even under concurrent inserts
	// (the store's unique constraints are the real guard).
	Create(ctx context.Context, user NewUser) (int64, error)
	// UpdatePassword replaces the stored hash and returns rows affected.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) (int64, error)
	// TouchLastLogin stamps last_login = now. Best-effort on the caller side.
	TouchLastLogin(ctx context.Context, userID int64) error
}

// TokenStore persists issued-token records so tokens can be revoked before
// their cryptographic expiry.
type TokenStore interface {
	Put(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	// Get returns nil when the token was never stored or has been invalidated.
	Get(ctx context.Context, token string) (*domain.AuthToken, error)
	// Invalidate removes one token. Idempotent.
	Invalidate(ctx context.Context, token string) error
	// InvalidateAll removes every token belonging to the user. Idempotent.
	InvalidateAll(ctx context.Context, userID int64) error
}

// FinancialRepository persists revenue and expense rows via the financial
// stored procedures.
type FinancialRepository interface {
	List(ctx context.Context, kind domain.RecordKind) ([]*domain.FinancialRecord, error)
	GetByID(ctx context.Context, kind domain.RecordKind, id int64) (*domain.FinancialRecord, error)
	// Create returns the procedure's return code: the new id, or 0 on failure.
	Create(ctx context.Context, rec *domain.FinancialRecord) (int64, error)
	Update(ctx context.Context, rec *domain.FinancialRecord) (int64, error)
	Delete(ctx context.Context, kind domain.RecordKind, id int64) (int64, error)
	// BulkInsert writes the batch in one shot and returns rows written.
	BulkInsert(ctx context.Context, kind domain.RecordKind, recs []*domain.FinancialRecord) (int64, error)
	// ListSources returns the source catalog for the kind.
	ListSources(ctx context.Context, kind domain.RecordKind) ([]*domain.FinancialSource, error)
}

// SpeedTestRepository persists speed-test measurements.
type SpeedTestRepository interface {
	List(ctx context.Context, start, end *time.Time) ([]*domain.SpeedTest, error)
	GetByID(ctx context.Context, id int64) (*domain.SpeedTest, error)
	Create(ctx context.Context, st *domain.SpeedTest) (int64, error)
	Update(ctx context.Context, st *domain.SpeedTest) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
