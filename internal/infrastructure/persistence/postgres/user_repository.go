package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	"github.com/quangxuan98765/data-processing-api/internal/domain"
	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
)

const (
	userColumns = `id, username, email, first_name, last_name, password_hash,
		is_staff, is_superuser, is_active, date_joined, last_login`

	getUserByUsernameSQL = `SELECT ` + userColumns + ` FROM auth_user WHERE username = $1`
	getUserByEmailSQL    = `SELECT ` + userColumns + ` FROM auth_user WHERE email = $1`
	getUserByIDSQL       = `SELECT ` + userColumns + ` FROM auth_user WHERE id = $1`

	// sp_create_user inserts the row and returns its id. The table's unique
	// constraints on username and email are the real duplicate guard.
	createUserSQL = `SELECT sp_create_user($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	// sp_change_password returns the number of rows it touched.
	changePasswordSQL = `SELECT sp_change_password($1, $2)`

	touchLastLoginSQL = `UPDATE auth_user SET last_login = NOW() WHERE id = $1`
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, getUserByUsernameSQL, username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, getUserByEmailSQL, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, getUserByIDSQL, id)
}

func (r *UserRepository) getOne(ctx context.Context, sql string, arg any) (*domain.User, error) {
	var (
		u         domain.User
		lastLogin *time.Time
	)
	err := r.pool.QueryRow(ctx, sql, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.IsStaff, &u.IsSuperuser, &u.IsActive, &u.DateJoined, &lastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.LastLogin = lastLogin
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user ports.NewUser) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, createUserSQL,
		user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash,
		user.IsStaff, user.IsSuperuser, user.IsActive, user.DateJoined,
	).Scan(&id)
	if err != nil {
		return 0, mapUniqueViolation(err)
	}
	return id, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) (int64, error) {
	var rows int64
	if err := r.pool.QueryRow(ctx, changePasswordSQL, userID, passwordHash).Scan(&rows); err != nil {
		return 0, err
	}
	return rows, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, touchLastLoginSQL, userID)
	return err
}

// mapUniqueViolation turns a 23505 on the username or email constraint into
// the matching sentinel so concurrent registrations surface as duplicates,
// not as raw database errors.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return domerrors.ErrUsernameExists
	case strings.Contains(pgErr.ConstraintName, "email"):
		return domerrors.ErrEmailExists
	}
	return err
}

var _ ports.UserRepository = (*UserRepository)(nil)
