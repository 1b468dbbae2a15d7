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
	speedTestColumns = `id, measured_at, location, download_mbps, upload_mbps, ping_ms, owner_id, entered_by`

	listSpeedTestsSQL = `SELECT ` + speedTestColumns + ` FROM speed_test
		WHERE ($1::timestamptz IS NULL OR measured_at >= $1)
		  AND ($2::timestamptz IS NULL OR measured_at <= $2)
		ORDER BY measured_at DESC`

	getSpeedTestSQL = `SELECT ` + speedTestColumns + ` FROM speed_test WHERE id = $1`

	insertSpeedTestSQL = `SELECT sp_insert_speed_test($1, $2, $3, $4, $5, $6, $7)`
	updateSpeedTestSQL = `SELECT sp_update_speed_test($1, $2, $3, $4, $5, $6)`
	deleteSpeedTestSQL = `SELECT sp_delete_speed_test($1)`
)

type SpeedTestRepository struct {
	pool *pgxpool.Pool
}

func NewSpeedTestRepository(pool *pgxpool.Pool) *SpeedTestRepository {
	return &SpeedTestRepository{pool: pool}
}

func (r *SpeedTestRepository) List(ctx context.Context, start, end *time.Time) ([]*domain.SpeedTest, error) {
	rows, err := r.pool.Query(ctx, listSpeedTestsSQL, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.SpeedTest
	for rows.Next() {
		var st domain.SpeedTest
		if err := rows.Scan(
			&st.ID, &st.MeasuredAt, &st.Location, &st.DownloadMbps, &st.UploadMbps,
			&st.PingMs, &st.OwnerID, &st.EnteredBy,
		); err != nil {
			return nil, err
		}
		out = append(out, &st)
	}
	return out, rows.Err()
}

func (r *SpeedTestRepository) GetByID(ctx context.Context, id int64) (*domain.SpeedTest, error) {
	var st domain.SpeedTest
	err := r.pool.QueryRow(ctx, getSpeedTestSQL, id).Scan(
		&st.ID, &st.MeasuredAt, &st.Location, &st.DownloadMbps, &st.UploadMbps,
		&st.PingMs, &st.OwnerID, &st.EnteredBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

func (r *SpeedTestRepository) Create(ctx context.Context, st *domain.SpeedTest) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, insertSpeedTestSQL,
		st.MeasuredAt, st.Location, st.DownloadMbps, st.UploadMbps, st.PingMs,
		st.OwnerID, st.EnteredBy,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *SpeedTestRepository) Update(ctx context.Context, st *domain.SpeedTest) (int64, error) {
	var code int64
	err := r.pool.QueryRow(ctx, updateSpeedTestSQL,
		st.ID, st.MeasuredAt, st.Location, st.DownloadMbps, st.UploadMbps, st.PingMs,
	).Scan(&code)
	if err != nil {
		return 0, err
	}
	return code, nil
}

func (r *SpeedTestRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var code int64
	if err := r.pool.QueryRow(ctx, deleteSpeedTestSQL, id).Scan(&code); err != nil {
		return 0, err
	}
	return code, nil
}

var _ ports.SpeedTestRepository = (*SpeedTestRepository)(nil)
