package httpx

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/accesslog"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/metrics"
)

// ResponseTimeHeader carries the handler latency in milliseconds.
const ResponseTimeHeader = "X-Response-Time-ms"

// Recorder persists access log entries.
type Recorder interface {
	Record(e accesslog.Entry)
}

type responseWriter struct {
	http.ResponseWriter
	start         time.Time
	statusCode    int
	bytesWritten  int64
	headerWritten bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.headerWritten {
		rw.statusCode = code
		rw.headerWritten = true
		rw.Header().Set(ResponseTimeHeader, formatMs(time.Since(rw.start)))
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

func (rw *responseWriter) wroteHeader() bool {
	return rw.headerWritten
}

// AccessLogMiddleware times every request and records exactly one entry for it,
// including requests whose handler failed or panicked.
func AccessLogMiddleware(rec Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{
				ResponseWriter: w,
				start:          start,
				statusCode:     http.StatusOK,
			}

			metrics.TrackActiveRequest(true)
			completed := false
			defer func() {
				metrics.TrackActiveRequest(false)

				elapsed := time.Since(start)
				status := rw.statusCode
				if !completed && !rw.headerWritten {
					status = http.StatusInternalServerError
				}

				rec.Record(accesslog.Entry{
					Time:           start.UTC(),
					Endpoint:       r.URL.Path,
					Method:         r.Method,
					ClientIP:       ClientIP(r),
					StatusCode:     status,
					ResponseTimeMs: roundMs(elapsed),
					RequestID:      RequestIDFrom(r),
				})
				metrics.RecordAPIRequest(r.Method, routePattern(r), strconv.Itoa(status), elapsed)
			}()

			next.ServeHTTP(rw, r)
			if !rw.headerWritten {
				rw.WriteHeader(http.StatusOK)
			}
			completed = true
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func roundMs(d time.Duration) float64 {
	return math.Round(float64(d.Microseconds())/10) / 100
}

func formatMs(d time.Duration) string {
	return strconv.FormatFloat(roundMs(d), 'f', 2, 64)
}
