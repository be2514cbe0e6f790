package broadcast

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"rakta/internal/domain"
	"rakta/internal/infra"
	"rakta/internal/metrics"
)

// DonorSource provides donor snapshots for cohort resolution. The donor
// repository satisfies it.
type DonorSource interface {
	List(ctx context.Context, filter domain.CohortFilter) ([]domain.Donor, error)
	ListWithEligibility(ctx context.Context) ([]domain.DonorWithEligibility, error)
}

// ServiceOptions configures the broadcast service.
type ServiceOptions struct {
	Deadline time.Duration
	Metrics  *metrics.Metrics
	Logger   *infra.Logger
}

// Service composes cohort resolution and dispatch into the segment broadcast
// pipeline.
type Service struct {
	donors     DonorSource
	dispatcher *Dispatcher
	deadline   time.Duration
	metrics    *metrics.Metrics
	logger     *infra.Logger
}

// NewService wires the pipeline together.
func NewService(donors DonorSource, dispatcher *Dispatcher, opts ServiceOptions) *Service {
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Service{
		donors:     donors,
		dispatcher: dispatcher,
		deadline:   opts.Deadline,
		metrics:    opts.Metrics,
		logger:     logger,
	}
}

// SendToFilteredDonors resolves the donor cohort for the filter and dispatches
// the message to every resolved phone number. An upstream fetch failure fails
// the whole operation before any send is attempted; per-recipient delivery
// failures are collected in the result instead.
func (s *Service) SendToFilteredDonors(ctx context.Context, filter domain.CohortFilter, message string, eligibleOnly bool) Result {
	if s.metrics != nil {
		s.metrics.BroadcastsTotal.Inc()
	}

	cohort, err := s.resolve(ctx, filter, eligibleOnly)
	if err != nil {
		s.logger.Error().Err(err).Msg("broadcast aborted: donor fetch failed")
		return Result{
			Success: false,
			Errors:  []SendError{{Error: fmt.Sprintf("fetch donors: %v", err)}},
		}
	}

	phones := make([]string, 0, len(cohort))
	for _, d := range cohort {
		phones = append(phones, d.Phone)
	}

	if s.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.deadline)
		defer cancel()
	}

	s.logger.Info().
		Int("recipients", len(phones)).
		Bool("eligible_only", eligibleOnly).
		Str("blood_group", filter.BloodGroup).
		Msg("dispatching broadcast")

	result := s.dispatcher.Dispatch(ctx, phones, message)

	if s.metrics != nil {
		s.metrics.MessagesSent.Add(float64(result.SentCount))
		s.metrics.MessagesFailed.Add(float64(len(result.Errors)))
	}
	return result
}

// resolve fetches the donor cohort. The cheaper donor-only fetch filters in
// SQL; the eligibility-gated path needs full donation history and filters in
// memory.
func (s *Service) resolve(ctx context.Context, filter domain.CohortFilter, eligibleOnly bool) ([]domain.Donor, error) {
	if !eligibleOnly {
		return s.donors.List(ctx, filter)
	}
	pairs, err := s.donors.ListWithEligibility(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ResolveCohort(pairs, filter, true), nil
}
