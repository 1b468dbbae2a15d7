package records

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func validRow() ImportRow {
	return ImportRow{
		FiscalMonth: "4",
		FiscalYear:  "2025",
		SourceName:  "State support",
		Amount:      "1200.75",
		Description: "April subsidy",
	}
}

func TestImportSuccess(t *testing.T) {
	t.Parallel()
	repo, svc := newRevenueFixture()

	r2 := validRow()
	r2.FiscalMonth = "5"
	res, err := svc.Import(context.Background(), carol, []ImportRow{validRow(), r2})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.NotEmpty(t, res.BatchID)
	require.Equal(t, 2, res.TotalRows)
	require.Equal(t, 2, res.ProcessedRows)
	require.Equal(t, 2, res.InsertedRows)
	require.Empty(t, res.Errors)

	recs, err := repo.List(context.Background(), svc.Kind())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		require.Equal(t, carol.ID, r.OwnerID)
		require.Equal(t, "carol", r.EnteredBy)
	}
}

func TestImportEmptyBatch(t *testing.T) {
	t.Parallel()
	_, svc := newRevenueFixture()

	res, err := svc.Import(context.Background(), carol, nil)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.NotEmpty(t, res.Errors)
}

// One bad row fails the whole batch; nothing is written.
func TestImportAllOrNothing(t *testing.T) {
	t.Parallel()
	repo, svc := newRevenueFixture()

	bad := validRow()
	bad.FiscalMonth = "13"
	res, err := svc.Import(context.Background(), carol, []ImportRow{validRow(), bad})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, 0, res.InsertedRows)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "row 2")

	recs, err := repo.List(context.Background(), svc.Kind())
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestImportRowValidation(t *testing.T) {
	t.Parallel()
	_, svc := newRevenueFixture()

	cases := []struct {
		name    string
		mutate  func(*ImportRow)
		wantMsg string
	}{
		{"missing month", func(r *ImportRow) { r.FiscalMonth = " " }, "fiscal month is required"},
		{"missing year", func(r *ImportRow) { r.FiscalYear = "" }, "fiscal year is required"},
		{"missing amount", func(r *ImportRow) { r.Amount = "" }, "amount is required"},
		{"month out of range", func(r *ImportRow) { r.FiscalMonth = "0" }, "month must be between 1 and 12"},
		{"month not numeric", func(r *ImportRow) { r.FiscalMonth = "Mar" }, "month must be between 1 and 12"},
		{"year too old", func(r *ImportRow) { r.FiscalYear = "1987" }, "year must be 2000 or later"},
		{"negative amount", func(r *ImportRow) { r.Amount = "-5" }, "amount must be a number >= 0"},
		{"unknown source", func(r *ImportRow) { r.SourceName = "Donations" }, "unknown source"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			row := validRow()
			c.mutate(&row)
			res, err := svc.Import(context.Background(), carol, []ImportRow{row})
			require.NoError(t, err)
			require.False(t, res.Success)
			found := false
			for _, e := range res.Errors {
				if strings.Contains(e, c.wantMsg) {
					found = true
				}
			}
			require.True(t, found, "errors %v should mention %q", res.Errors, c.wantMsg)
		})
	}
}
