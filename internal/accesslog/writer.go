package accesslog

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Writer appends entries as newline-delimited JSON. Each entry reaches the
// underlying writer in a single Write call, serialized across goroutines.
type Writer struct {
	log    zerolog.Logger
	closer io.Closer
}

// Open appends to the log file at path, creating it when missing.
func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open access log %s: %w", path, err)
	}
	w := NewWriter(f)
	w.closer = f
	return w, nil
}

// NewWriter wraps an arbitrary destination.
func NewWriter(out io.Writer) *Writer {
	return &Writer{log: zerolog.New(zerolog.SyncWriter(out))}
}

// Record appends one entry. Entries bypass the global log level.
func (w *Writer) Record(e Entry) {
	w.log.Log().
		Str(zerolog.LevelFieldName, zerolog.InfoLevel.String()).
		Time("time", e.Time).
		Str("endpoint", e.Endpoint).
		Str("method", e.Method).
		Str("ip", e.ClientIP).
		Int("status_code", e.StatusCode).
		Float64("response_time_ms", e.ResponseTimeMs).
		Str("request_id", e.RequestID).
		Msg("request")
}

func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}
