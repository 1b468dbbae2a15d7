package records

import (
	"context"
	"strings"
	"time"

	"github.com/quangxuan98765/data-processing-api/internal/application/authz"
	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	"github.com/quangxuan98765/data-processing-api/internal/domain"
	domerrors "github.com/quangxuan98765/data-processing-api/internal/domain/errors"
)

// SpeedTestInput carries the mutable fields of a speed-test measurement.
type SpeedTestInput struct {
	MeasuredAt   time.Time
	Location     string
	DownloadMbps float64
	UploadMbps   float64
	PingMs       float64
}

func (in SpeedTestInput) validate() error {
	if strings.TrimSpace(in.Location) == "" {
		return domerrors.ErrInvalidInput
	}
	if in.DownloadMbps < 0 || in.UploadMbps < 0 || in.PingMs < 0 {
		return domerrors.ErrInvalidInput
	}
	return nil
}

// SpeedTestService handles network speed-test measurements with the same
// ownership gate as the financial services.
type SpeedTestService struct {
	repo ports.SpeedTestRepository
	gate *authz.Gate
}

func NewSpeedTestService(repo ports.SpeedTestRepository, gate *authz.Gate) *SpeedTestService {
	return &SpeedTestService{repo: repo, gate: gate}
}

// List returns measurements, optionally bounded by [start, end].
func (s *SpeedTestService) List(ctx context.Context, start, end *time.Time) ([]*domain.SpeedTest, error) {
	return s.repo.List(ctx, start, end)
}

func (s *SpeedTestService) GetByID(ctx context.Context, id int64) (*domain.SpeedTest, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domerrors.ErrNotFound
	}
	return st, nil
}

func (s *SpeedTestService) Create(ctx context.Context, actor *domain.PublicUser, in SpeedTestInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}
	measuredAt := in.MeasuredAt
	if measuredAt.IsZero() {
		measuredAt = time.Now()
	}
	id, err := s.repo.Create(ctx, &domain.SpeedTest{
		MeasuredAt:   measuredAt,
		Location:     in.Location,
		DownloadMbps: in.DownloadMbps,
		UploadMbps:   in.UploadMbps,
		PingMs:       in.PingMs,
		OwnerID:      actor.ID,
		EnteredBy:    actor.Username,
	})
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, domerrors.ErrPersistence
	}
	return id, nil
}

func (s *SpeedTestService) Update(ctx context.Context, actor *domain.PublicUser, id int64, in SpeedTestInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if st == nil {
		return domerrors.ErrNotFound
	}
	if err := s.gate.CanMutate(actor, st.OwnerID); err != nil {
		return err
	}
	st.Location = in.Location
	st.DownloadMbps = in.DownloadMbps
	st.UploadMbps = in.UploadMbps
	st.PingMs = in.PingMs
	if !in.MeasuredAt.IsZero() {
		st.MeasuredAt = in.MeasuredAt
	}
	code, err := s.repo.Update(ctx, st)
	if err != nil {
		return err
	}
	if code == 0 {
		return domerrors.ErrPersistence
	}
	return nil
}

func (s *SpeedTestService) Delete(ctx context.Context, actor *domain.PublicUser, id int64) error {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if st == nil {
		return domerrors.ErrNotFound
	}
	if err := s.gate.CanMutate(actor, st.OwnerID); err != nil {
		return err
	}
	code, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if code == 0 {
		return domerrors.ErrPersistence
	}
	return nil
}
