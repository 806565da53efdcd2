package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=book

// Loader reads the whole catalog. Implementations may reload on every call or cache.
type Loader interface {
	Load(ctx context.Context) ([]Book, error)
}
