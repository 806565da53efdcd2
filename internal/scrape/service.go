package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/logging"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/metrics"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100

	defaultDispatchTimeout = 20 * time.Second
)

type Service struct {
	repo            Repository
	dispatcher      Dispatcher
	dispatchTimeout time.Duration
	now             func() time.Time
}

func NewService(repo Repository, dispatcher Dispatcher) *Service {
	return &Service{
		repo:            repo,
		dispatcher:      dispatcher,
		dispatchTimeout: defaultDispatchTimeout,
		now:             time.Now,
	}
}

// Trigger records a run for subject and dispatches it. The returned run carries
// the final status; a dispatch failure is returned alongside a FAILED run.
func (s *Service) Trigger(ctx context.Context, subject string) (run Run, err error) {
	run = Run{
		ID:          uuid.NewString(),
		RequestedBy: subject,
		Status:      StatusPending,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, &run); err != nil {
		return Run{}, fmt.Errorf("create scrape run: %w", err)
	}

	defer func() {
		finished := s.now().UTC()
		run.FinishedAt = &finished
		if err != nil {
			run.Status = StatusFailed
			run.Error = err.Error()
		} else {
			run.Status = StatusDispatched
		}
		metrics.ScrapeRunsTotal.WithLabelValues(string(run.Status)).Inc()

		// The request context may already be done; the bookkeeping must still land.
		updateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if updateErr := s.repo.Update(updateCtx, &run); updateErr != nil {
			logging.Error().Err(updateErr).Str("run_id", run.ID).Msg("failed to update scrape run")
		}
	}()

	dispatchCtx, cancel := context.WithTimeout(ctx, s.dispatchTimeout)
	defer cancel()

	jobID, err := s.dispatcher.Dispatch(dispatchCtx, run)
	if err != nil {
		return run, fmt.Errorf("dispatch scrape run: %w", err)
	}
	run.JobID = jobID
	return run, nil
}

// Get returns a run by id.
func (s *Service) Get(ctx context.Context, id string) (Run, error) {
	return s.repo.Get(ctx, id)
}

// List returns the most recent runs, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
