package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	"github.com/quangxuan98765/data-processing-api/internal/domain"
)

const (
	financialColumns = `r.id, r.fiscal_month, r.fiscal_year, r.source_id, s.name, r.kind,
		r.amount, r.description, r.note, r.entered_at, r.owner_id, r.entered_by`

	listFinancialSQL = `SELECT ` + financialColumns + `
		FROM financial_record r
		JOIN financial_source s ON s.id = r.source_id
		WHERE r.kind = $1
		ORDER BY r.fiscal_year DESC, r.fiscal_month DESC, r.id DESC`

	getFinancialSQL = `SELECT ` + financialColumns + `
		FROM financial_record r
		JOIN financial_source s ON s.id = r.source_id
		WHERE r.kind = $1 AND r.id = $2`

	// The mutation procedures return the affected id, or 0 when nothing
	// matched. The services treat 0 as a persistence failure.
	insertFinancialSQL = `SELECT sp_insert_financial_record($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	updateFinancialSQL = `SELECT sp_update_financial_record($1, $2, $3, $4, $5, $6, $7, $8)`
	deleteFinancialSQL = `SELECT sp_delete_financial_record($1, $2)`

	listSourcesSQL = `SELECT id, name, kind FROM financial_source WHERE kind = $1 ORDER BY name`
)

type FinancialRepository struct {
	pool *pgxpool.Pool
}

func NewFinancialRepository(pool *pgxpool.Pool) *FinancialRepository {
	return &FinancialRepository{pool: pool}
}

func (r *FinancialRepository) List(ctx context.Context, kind domain.RecordKind) ([]*domain.FinancialRecord, error) {
	rows, err := r.pool.Query(ctx, listFinancialSQL, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.FinancialRecord
	for rows.Next() {
		rec, err := scanFinancial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *FinancialRepository) GetByID(ctx context.Context, kind domain.RecordKind, id int64) (*domain.FinancialRecord, error) {
	rows, err := r.pool.Query(ctx, getFinancialSQL, string(kind), id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return scanFinancial(rows)
}

func (r *FinancialRepository) Create(ctx context.Context, rec *domain.FinancialRecord) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, insertFinancialSQL,
		string(rec.Kind), rec.FiscalMonth, rec.FiscalYear, rec.SourceID,
		rec.Amount, rec.Description, rec.Note, rec.EnteredAt, rec.OwnerID, rec.EnteredBy,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *FinancialRepository) Update(ctx context.Context, rec *domain.FinancialRecord) (int64, error) {
	var code int64
	err := r.pool.QueryRow(ctx, updateFinancialSQL,
		rec.ID, string(rec.Kind), rec.FiscalMonth, rec.FiscalYear, rec.SourceID,
		rec.Amount, rec.Description, rec.Note,
	).Scan(&code)
	if err != nil {
		return 0, err
	}
	return code, nil
}

func (r *FinancialRepository) Delete(ctx context.Context, kind domain.RecordKind, id int64) (int64, error) {
	var code int64
	if err := r.pool.QueryRow(ctx, deleteFinancialSQL, string(kind), id).Scan(&code); err != nil {
		return 0, err
	}
	return code, nil
}

// BulkInsert writes the whole batch in one transaction via COPY, so a batch
// either lands in full or not at all.
func (r *FinancialRepository) BulkInsert(ctx context.Context, kind domain.RecordKind, recs []*domain.FinancialRecord) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"financial_record"},
		[]string{"kind", "fiscal_month", "fiscal_year", "source_id", "amount", "description", "note", "entered_at", "owner_id", "entered_by"},
		pgx.CopyFromSlice(len(recs), func(i int) ([]any, error) {
			rec := recs[i]
			return []any{
				string(kind), rec.FiscalMonth, rec.FiscalYear, rec.SourceID,
				rec.Amount, rec.Description, rec.Note, rec.EnteredAt, rec.OwnerID, rec.EnteredBy,
			}, nil
		}),
	)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return copied, nil
}

func (r *FinancialRepository) ListSources(ctx context.Context, kind domain.RecordKind) ([]*domain.FinancialSource, error) {
	rows, err := r.pool.Query(ctx, listSourcesSQL, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.FinancialSource
	for rows.Next() {
		var (
			s domain.FinancialSource
			k string
		)
		if err := rows.Scan(&s.ID, &s.Name, &k); err != nil {
			return nil, err
		}
		s.Kind = domain.RecordKind(k)
		out = append(out, &s)
	}
	return out, rows.Err()
}

func scanFinancial(rows pgx.Rows) (*domain.FinancialRecord, error) {
	var (
		rec  domain.FinancialRecord
		kind string
	)
	err := rows.Scan(
		&rec.ID, &rec.FiscalMonth, &rec.FiscalYear, &rec.SourceID, &rec.SourceName, &kind,
		&rec.Amount, &rec.Description, &rec.Note, &rec.EnteredAt, &rec.OwnerID, &rec.EnteredBy,
	)
	if err != nil {
		return nil, err
	}
	rec.Kind = domain.RecordKind(kind)
	return &rec, nil
}

var _ ports.FinancialRepository = (*FinancialRepository)(nil)
