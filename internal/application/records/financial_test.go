package records

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quangxuan98765/data-processing-api/internal/application/authz"
	"github.com/quangxuan98765/data-processing-api/internal/domain"
	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
)

var (
	bob   = &domain.PublicUser{ID: 5, Username: "bob"}
	carol = &domain.PublicUser{ID: 9, Username: "carol"}
	admin = &domain.PublicUser{ID: 1, Username: "root", IsSuperuser: true}
)

func newRevenueFixture() (*fakeFinancialRepo, *FinancialService) {
	repo := newFakeFinancialRepo(
		&domain.FinancialSource{ID: 1, Name: "State support", Kind: domain.KindRevenue},
		&domain.FinancialSource{ID: 2, Name: "Education and training", Kind: domain.KindRevenue},
	)
	svc := NewRevenueService(repo, NewSourceCatalog(repo), authz.NewGate())
	return repo, svc
}

func validInput() RecordInput {
	return RecordInput{FiscalMonth: 3, FiscalYear: 2025, SourceID: 1, Amount: 1500.50}
}

func TestCreateAndGet(t *testing.T) {
	t.Parallel()
	_, svc := newRevenueFixture()

	id, err := svc.Create(context.Background(), carol, validInput())
	require.NoError(t, err)
	require.NotZero(t, id)

	rec, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, carol.ID, rec.OwnerID)
	require.Equal(t, "carol", rec.EnteredBy)
	require.Equal(t, "State support", rec.SourceName)
}

func TestCreateRejectsBadInput(t *testing.T) {
	t.Parallel()
	_, svc := newRevenueFixture()

	bad := []RecordInput{
		{FiscalMonth: 0, FiscalYear: 2025, SourceID: 1, Amount: 1},
		{FiscalMonth: 13, FiscalYear: 2025, SourceID: 1, Amount: 1},
		{FiscalMonth: 3, FiscalYear: 1999, SourceID: 1, Amount: 1},
		{FiscalMonth: 3, FiscalYear: 2025, SourceID: 0, Amount: 1},
		{FiscalMonth: 3, FiscalYear: 2025, SourceID: 1, Amount: -0.01},
	}
	for _, in := range bad {
		_, err := svc.Create(context.Background(), carol, in)
		require.ErrorIs(t, err, domerrors.ErrInvalidInput, "input %+v", in)
	}
}

// Non-owners are rejected with Forbidden; owner and superuser may mutate.
// Not-found stays distinct from forbidden.
func TestOwnershipEnforcedOnMutation(t *testing.T) {
	t.Parallel()
	_, svc := newRevenueFixture()

	id, err := svc.Create(context.Background(), carol, validInput())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), bob, id)
	require.ErrorIs(t, err, domerrors.ErrForbidden)
	err = svc.Update(context.Background(), bob, id, validInput())
	require.ErrorIs(t, err, domerrors.ErrForbidden)

	// Record untouched by the denied attempts.
	rec, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, carol.ID, rec.OwnerID)

	in := validInput()
	in.Amount = 99
	require.NoError(t, svc.Update(context.Background(), carol, id, in))
	require.NoError(t, svc.Delete(context.Background(), carol, id))

	_, err = svc.GetByID(context.Background(), id)
	require.ErrorIs(t, err, domerrors.ErrNotFound)
	err = svc.Delete(context.Background(), bob, id)
	require.ErrorIs(t, err, domerrors.ErrNotFound)
}

func TestSuperuserOverridesOwnership(t *testing.T) {
	t.Parallel()
	_, svc := newRevenueFixture()

	id, err := svc.Create(context.Background(), carol, validInput())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), admin, id))
}

func TestUpdateZeroReturnCode(t *testing.T) {
	t.Parallel()
	repo, svc := newRevenueFixture()

	id, err := svc.Create(context.Background(), carol, validInput())
	require.NoError(t, err)

	repo.updateCode = 0
	err = svc.Update(context.Background(), carol, id, validInput())
	require.ErrorIs(t, err, domerrors.ErrPersistence)
}

func TestListFillsSourceNames(t *testing.T) {
	t.Parallel()
	_, svc := newRevenueFixture()

	_, err := svc.Create(context.Background(), carol, validInput())
	require.NoError(t, err)
	in := validInput()
	in.SourceID = 2
	_, err = svc.Create(context.Background(), carol, in)
	require.NoError(t, err)

	recs, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	names := map[string]bool{}
	for _, r := range recs {
		names[r.SourceName] = true
	}
	require.True(t, names["State support"])
	require.True(t, names["Education and training"])
}

func TestCatalogLoadsOnce(t *testing.T) {
	t.Parallel()
	repo, svc := newRevenueFixture()

	for i := 0; i < 3; i++ {
		_, ok, err := svc.catalog.IDByName(context.Background(), domain.KindRevenue, "State support")
		require.NoError(t, err)
		require.True(t, ok)
	}
	require.Equal(t, 1, repo.sourceCalls)

	require.NoError(t, svc.catalog.Refresh(context.Background(), domain.KindRevenue))
	require.Equal(t, 2, repo.sourceCalls)
}
