package records

import (
	"context"
	"sync"
	"time"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	"github.com/quangxuan98765/data-processing-api/internal/domain"
)

type fakeFinancialRepo struct {
	mu          sync.Mutex
	nextID      int64
	recs        map[int64]*domain.FinancialRecord
	sources     []*domain.FinancialSource
	sourceCalls int
	updateCode  int64 // -1 => succeed
	bulkErr     error
}

func newFakeFinancialRepo(sources ...*domain.FinancialSource) *fakeFinancialRepo {
	return &fakeFinancialRepo{
		recs:       make(map[int64]*domain.FinancialRecord),
		sources:    sources,
		updateCode: -1,
	}
}

func (f *fakeFinancialRepo) List(_ context.Context, kind domain.RecordKind) ([]*domain.FinancialRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.FinancialRecord
	for _, r := range f.recs {
		if r.Kind == kind {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeFinancialRepo) GetByID(_ context.Context, kind domain.RecordKind, id int64) (*domain.FinancialRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.recs[id]; ok && r.Kind == kind {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeFinancialRepo) Create(_ context.Context, rec *domain.FinancialRecord) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	cp := *rec
	cp.ID = f.nextID
	f.recs[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeFinancialRepo) Update(_ context.Context, rec *domain.FinancialRecord) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateCode >= 0 {
		return f.updateCode, nil
	}
	if _, ok := f.recs[rec.ID]; !ok {
		return 0, nil
	}
	cp := *rec
	f.recs[rec.ID] = &cp
	return rec.ID, nil
}

func (f *fakeFinancialRepo) Delete(_ context.Context, kind domain.RecordKind, id int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.recs[id]; ok && r.Kind == kind {
		delete(f.recs, id)
		return id, nil
	}
	return 0, nil
}

func (f *fakeFinancialRepo) BulkInsert(_ context.Context, kind domain.RecordKind, recs []*domain.FinancialRecord) (int64, error) {
	if f.bulkErr != nil {
		return 0, f.bulkErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range recs {
		f.nextID++
		cp := *r
		cp.ID = f.nextID
		cp.Kind = kind
		f.recs[cp.ID] = &cp
	}
	return int64(len(recs)), nil
}

func (f *fakeFinancialRepo) ListSources(_ context.Context, kind domain.RecordKind) ([]*domain.FinancialSource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sourceCalls++
	var out []*domain.FinancialSource
	for _, s := range f.sources {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out, nil
}

var _ ports.FinancialRepository = (*fakeFinancialRepo)(nil)

type fakeSpeedTestRepo struct {
	mu     sync.Mutex
	nextID int64
	recs   map[int64]*domain.SpeedTest
}

func newFakeSpeedTestRepo() *fakeSpeedTestRepo {
	return &fakeSpeedTestRepo{recs: make(map[int64]*domain.SpeedTest)}
}

func (f *fakeSpeedTestRepo) List(_ context.Context, start, end *time.Time) ([]*domain.SpeedTest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.SpeedTest
	for _, st := range f.recs {
		if start != nil && st.MeasuredAt.Before(*start) {
			continue
		}
		if end != nil && st.MeasuredAt.After(*end) {
			continue
		}
		cp := *st
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeSpeedTestRepo) GetByID(_ context.Context, id int64) (*domain.SpeedTest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.recs[id]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeSpeedTestRepo) Create(_ context.Context, st *domain.SpeedTest) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	cp := *st
	cp.ID = f.nextID
	f.recs[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeSpeedTestRepo) Update(_ context.Context, st *domain.SpeedTest) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recs[st.ID]; !ok {
		return 0, nil
	}
	cp := *st
	f.recs[st.ID] = &cp
	return st.ID, nil
}

func (f *fakeSpeedTestRepo) Delete(_ context.Context, id int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recs[id]; !ok {
		return 0, nil
	}
	delete(f.recs, id)
	return id, nil
}

var _ ports.SpeedTestRepository = (*fakeSpeedTestRepo)(nil)
