package scrape

import (
	"context"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/logging"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/platform/scraper"
)

// JobStarter is the part of the scraper client the dispatcher needs.
type JobStarter interface {
	StartJob(ctx context.Context, req scraper.JobRequest) (*scraper.JobResponse, error)
}

// HTTPDispatcher forwards runs to a remote scraper service.
type HTTPDispatcher struct {
	client JobStarter
}

func NewHTTPDispatcher(client JobStarter) *HTTPDispatcher {
	return &HTTPDispatcher{client: client}
}

func (d *HTTPDispatcher) Dispatch(ctx context.Context, run Run) (string, error) {
	res, err := d.client.StartJob(ctx, scraper.JobRequest{
		RunID:       run.ID,
		RequestedBy: run.RequestedBy,
		RequestedAt: run.CreatedAt,
	})
	if err != nil {
		return "", err
	}
	return res.JobID, nil
}

// LogDispatcher only logs the request. It stands in when no scraper endpoint is configured
// and the store is refreshed out of band.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(_ context.Context, run Run) (string, error) {
	logging.Info().
		Str("run_id", run.ID).
		Str("requested_by", run.RequestedBy).
		Time("created_at", run.CreatedAt).
		Msg("scrape requested; no scraper endpoint configured")
	return "", nil
}

var (
	_ Dispatcher = (*HTTPDispatcher)(nil)
	_ Dispatcher = LogDispatcher{}
)
