package records

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quangxuan98765/data-processing-api/internal/domain"
)

// ImportRow is one spreadsheet-shaped row of a bulk import. Numeric fields
// arrive as strings, exactly as the upstream sheet parser hands them over.
type ImportRow struct {
	FiscalMonth string `json:"fiscal_month"`
	FiscalYear  string `json:"fiscal_year"`
	SourceName  string `json:"source_name"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Note        string `json:"note"`
}

// ImportResult reports a bulk import. Row errors use 1-based row numbers to
// match what the user sees in the sheet.
type ImportResult struct {
	BatchID       string   `json:"batch_id"`
	Success       bool     `json:"success"`
	Message       string   `json:"message,omitempty"`
	TotalRows     int      `json:"total_rows"`
	ProcessedRows int      `json:"processed_rows"`
	InsertedRows  int      `json:"inserted_rows"`
	Errors        []string `json:"errors,omitempty"`
}

func (r *ImportResult) addError(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Import validates every row, and only when the whole batch is clean writes
// it in one shot. A batch with any bad row inserts nothing.
func (s *FinancialService) Import(ctx context.Context, actor *domain.PublicUser, rows []ImportRow) (*ImportResult, error) {
	result := &ImportResult{
		BatchID:   uuid.NewString(),
		TotalRows: len(rows),
	}
	if len(rows) == 0 {
		result.addError("no data to import")
		return result, nil
	}

	recs := make([]*domain.FinancialRecord, 0, len(rows))
	now := time.Now()
	for i, row := range rows {
		rowNum := i + 1
		rec, ok := s.validateRow(ctx, row, rowNum, result)
		if !ok {
			continue
		}
		rec.Kind = s.kind
		rec.EnteredAt = now
		rec.OwnerID = actor.ID
		rec.EnteredBy = actor.Username
		recs = append(recs, rec)
	}
	if len(result.Errors) > 0 {
		result.Message = fmt.Sprintf("%d of %d rows failed validation", result.TotalRows-len(recs), result.TotalRows)
		return result, nil
	}

	inserted, err := s.repo.BulkInsert(ctx, s.kind, recs)
	if err != nil {
		return nil, err
	}
	result.Success = true
	result.Message = "bulk insert completed"
	result.ProcessedRows = len(recs)
	result.InsertedRows = int(inserted)
	return result, nil
}

func (s *FinancialService) validateRow(ctx context.Context, row ImportRow, rowNum int, result *ImportResult) (*domain.FinancialRecord, bool) {
	ok := true
	if strings.TrimSpace(row.FiscalMonth) == "" {
		result.addError("row %d: fiscal month is required", rowNum)
		ok = false
	}
	if strings.TrimSpace(row.FiscalYear) == "" {
		result.addError("row %d: fiscal year is required", rowNum)
		ok = false
	}
	if strings.TrimSpace(row.Amount) == "" {
		result.addError("row %d: amount is required", rowNum)
		ok = false
	}
	if !ok {
		return nil, false
	}

	month, err := strconv.Atoi(strings.TrimSpace(row.FiscalMonth))
	if err != nil || month < 1 || month > 12 {
		result.addError("row %d: month must be between 1 and 12", rowNum)
		ok = false
	}
	year, err := strconv.Atoi(strings.TrimSpace(row.FiscalYear))
	if err != nil || year < 2000 {
		result.addError("row %d: year must be 2000 or later", rowNum)
		ok = false
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(row.Amount), 64)
	if err != nil || amount < 0 {
		result.addError("row %d: amount must be a number >= 0", rowNum)
		ok = false
	}
	sourceID, known, err := s.catalog.IDByName(ctx, s.kind, strings.TrimSpace(row.SourceName))
	if err != nil {
		result.addError("row %d: source catalog unavailable", rowNum)
		ok = false
	} else if !known {
		result.addError("row %d: unknown source %q", rowNum, row.SourceName)
		ok = false
	}
	if !ok {
		return nil, false
	}

	return &domain.FinancialRecord{
		FiscalMonth: month,
		FiscalYear:  year,
		SourceID:    sourceID,
		Amount:      amount,
		Description: row.Description,
		Note:        row.Note,
	}, true
}
