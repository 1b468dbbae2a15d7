package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	"github.com/quangxuan98765/data-processing-api/internal/domain"
)

const (
	createAuthTokenSQL = `SELECT sp_create_auth_token($1, $2, $3)`

	getAuthTokenSQL = `SELECT id, token_key, user_id, expire_date, created_date
		FROM auth_token WHERE token_key = $1`

	invalidateTokenSQL      = `SELECT sp_invalidate_token($1)`
	invalidateUserTokensSQL = `SELECT sp_invalidate_user_tokens($1)`
)

// TokenStore keeps the server-side token records that make revocation
// possible before a token's cryptographic expiry.
type TokenStore struct {
	pool *pgxpool.Pool
}

func NewTokenStore(pool *pgxpool.Pool) *TokenStore {
	return &TokenStore{pool: pool}
}

func (s *TokenStore) Put(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx, createAuthTokenSQL, token, userID, expiresAt)
	return err
}

func (s *TokenStore) Get(ctx context.Context, token string) (*domain.AuthToken, error) {
	var rec domain.AuthToken
	err := s.pool.QueryRow(ctx, getAuthTokenSQL, token).Scan(
		&rec.ID, &rec.TokenKey, &rec.UserID, &rec.ExpireDate, &rec.CreatedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (s *TokenStore) Invalidate(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, invalidateTokenSQL, token)
	return err
}

func (s *TokenStore) InvalidateAll(ctx context.Context, userID int64) error {
	_, err := s.pool.Exec(ctx, invalidateUserTokensSQL, userID)
	return err
}

var _ ports.TokenStore = (*TokenStore)(nil)
