package scrape

import (
	"errors"
	"time"
)

var ErrRunNotFound = errors.New("scrape run not found")

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusDispatched Status = "DISPATCHED"
	StatusFailed     Status = "FAILED"
)

// Run records one privileged request to refresh the book store.
type Run struct {
	ID          string     `json:"id"`
	RequestedBy string     `json:"requested_by"`
	Status      Status     `json:"status"`
	JobID       string     `json:"job_id,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}
