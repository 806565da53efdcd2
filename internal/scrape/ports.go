package scrape

import "context"

type Repository interface {
	Create(ctx context.Context, run *Run) error
	Update(ctx context.Context, run *Run) error
	Get(ctx context.Context, id string) (Run, error)
	ListRecent(ctx context.Context, limit int) ([]Run, error)
}

// Dispatcher hands a run to the external scraper and returns the remote job id.
type Dispatcher interface {
	Dispatch(ctx context.Context, run Run) (string, error)
}
