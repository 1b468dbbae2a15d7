package records

import (
	"context"
	"time"

	"github.com/quangxuan98765/data-processing-api/internal/application/authz"
	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	"github.com/quangxuan98765/data-processing-api/internal/domain"
	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
)

// RecordInput carries the mutable fields of a financial record.
type RecordInput struct {
	FiscalMonth int
	FiscalYear  int
	SourceID    int
	Amount      float64
	Description string
	Note        string
}

func (in RecordInput) validate() error {
	if in.FiscalMonth < 1 || in.FiscalMonth > 12 {
		return domerrors.ErrInvalidInput
	}
	if in.FiscalYear < 2000 {
		return domerrors.ErrInvalidInput
	}
	if in.SourceID <= 0 || in.Amount < 0 {
		return domerrors.ErrInvalidInput
	}
	return nil
}

// FinancialService handles one record kind (revenue or expense). Both kinds
// share behavior; only the kind and source catalog differ.
type FinancialService struct {
	repo    ports.FinancialRepository
	catalog *SourceCatalog
	gate    *authz.Gate
	kind    domain.RecordKind
}

func NewRevenueService(repo ports.FinancialRepository, catalog *SourceCatalog, gate *authz.Gate) *FinancialService {
	return &FinancialService{repo: repo, catalog: catalog, gate: gate, kind: domain.KindRevenue}
}

func NewExpenseService(repo ports.FinancialRepository, catalog *SourceCatalog, gate *authz.Gate) *FinancialService {
	return &FinancialService{repo: repo, catalog: catalog, gate: gate, kind: domain.KindExpense}
}

// Kind returns the record kind this service handles.
func (s *FinancialService) Kind() domain.RecordKind { return s.kind }

// Sources lists the source catalog for this kind straight from the store.
func (s *FinancialService) Sources(ctx context.Context) ([]*domain.FinancialSource, error) {
	return s.repo.ListSources(ctx, s.kind)
}

func (s *FinancialService) List(ctx context.Context) ([]*domain.FinancialRecord, error) {
	recs, err := s.repo.List(ctx, s.kind)
	if err != nil {
		return nil, err
	}
	for _, r := range recs {
		if r.SourceName == "" {
			if name, err := s.catalog.NameByID(ctx, s.kind, r.SourceID); err == nil {
				r.SourceName = name
			}
		}
	}
	return recs, nil
}

func (s *FinancialService) GetByID(ctx context.Context, id int64) (*domain.FinancialRecord, error) {
	rec, err := s.repo.GetByID(ctx, s.kind, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domerrors.ErrNotFound
	}
	if rec.SourceName == "" {
		if name, err := s.catalog.NameByID(ctx, s.kind, rec.SourceID); err == nil {
			rec.SourceName = name
		}
	}
	return rec, nil
}

func (s *FinancialService) Create(ctx context.Context, actor *domain.PublicUser, in RecordInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, &domain.FinancialRecord{
		FiscalMonth: in.FiscalMonth,
		FiscalYear:  in.FiscalYear,
		SourceID:    in.SourceID,
		Kind:        s.kind,
		Amount:      in.Amount,
		Description: in.Description,
		Note:        in.Note,
		EnteredAt:   time.Now(),
		OwnerID:     actor.ID,
		EnteredBy:   actor.Username,
	})
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, domerrors.ErrPersistence
	}
	return id, nil
}

// Update mutates an existing record after the ownership gate admits the
// actor. Absent records report ErrNotFound, denied ones ErrForbidden.
func (s *FinancialService) Update(ctx context.Context, actor *domain.PublicUser, id int64, in RecordInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	rec, err := s.repo.GetByID(ctx, s.kind, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domerrors.ErrNotFound
	}
	if err := s.gate.CanMutate(actor, rec.OwnerID); err != nil {
		return err
	}
	rec.FiscalMonth = in.FiscalMonth
	rec.FiscalYear = in.FiscalYear
	rec.SourceID = in.SourceID
	rec.Amount = in.Amount
	rec.Description = in.Description
	rec.Note = in.Note
	code, err := s.repo.Update(ctx, rec)
	if err != nil {
		return err
	}
	if code == 0 {
		return domerrors.ErrPersistence
	}
	return nil
}

func (s *FinancialService) Delete(ctx context.Context, actor *domain.PublicUser, id int64) error {
	rec, err := s.repo.GetByID(ctx, s.kind, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domerrors.ErrNotFound
	}
	if err := s.gate.CanMutate(actor, rec.OwnerID); err != nil {
		return err
	}
	code, err := s.repo.Delete(ctx, s.kind, id)
	if err != nil {
		return err
	}
	if code == 0 {
		return domerrors.ErrPersistence
	}
	return nil
}
