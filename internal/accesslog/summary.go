package accesslog

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

const recentEntries = 10

// Summary holds the usage figures derived from an access log.
type Summary struct {
	TotalRequests     int                `json:"total_requests"`
	AverageResponseMs float64            `json:"average_response_ms"`
	ErrorRatePercent  float64            `json:"error_rate_percent"`
	UniqueEndpoints   int                `json:"unique_endpoints"`
	ByEndpoint        map[string]int     `json:"by_endpoint"`
	ByStatus          map[string]int     `json:"by_status"`
	AverageByEndpoint map[string]float64 `json:"average_ms_by_endpoint"`
	Recent            []Entry            `json:"recent"`
}

// line mirrors Entry with pointers so records missing the request fields can be told apart.
type line struct {
	Time           time.Time `json:"time"`
	Endpoint       *string   `json:"endpoint"`
	Method         string    `json:"method"`
	ClientIP       string    `json:"ip"`
	StatusCode     int       `json:"status_code"`
	ResponseTimeMs *float64  `json:"response_time_ms"`
	RequestID      string    `json:"request_id"`
}

// Summarize reads newline-delimited records. Lines that are not JSON or lack the
// endpoint or response time are skipped.
func Summarize(r io.Reader) (Summary, error) {
	s := Summary{
		ByEndpoint:        make(map[string]int),
		ByStatus:          make(map[string]int),
		AverageByEndpoint: make(map[string]float64),
		Recent:            make([]Entry, 0, recentEntries),
	}

	var totalMs float64
	var errCount int
	sumByEndpoint := make(map[string]float64)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var l line
		if err := json.Unmarshal(sc.Bytes(), &l); err != nil {
			continue
		}
		if l.Endpoint == nil || l.ResponseTimeMs == nil {
			continue
		}
		e := Entry{
			Time:           l.Time,
			Endpoint:       *l.Endpoint,
			Method:         l.Method,
			ClientIP:       l.ClientIP,
			StatusCode:     l.StatusCode,
			ResponseTimeMs: *l.ResponseTimeMs,
			RequestID:      l.RequestID,
		}

		s.TotalRequests++
		totalMs += e.ResponseTimeMs
		if e.IsError() {
			errCount++
		}
		s.ByEndpoint[e.Endpoint]++
		s.ByStatus[strconv.Itoa(e.StatusCode)]++
		sumByEndpoint[e.Endpoint] += e.ResponseTimeMs

		if len(s.Recent) == recentEntries {
			s.Recent = append(s.Recent[:0], s.Recent[1:]...)
		}
		s.Recent = append(s.Recent, e)
	}
	if err := sc.Err(); err != nil {
		return Summary{}, fmt.Errorf("read access log: %w", err)
	}

	if s.TotalRequests > 0 {
		s.AverageResponseMs = round2(totalMs / float64(s.TotalRequests))
		s.ErrorRatePercent = round2(100 * float64(errCount) / float64(s.TotalRequests))
	}
	s.UniqueEndpoints = len(s.ByEndpoint)
	for ep, sum := range sumByEndpoint {
		s.AverageByEndpoint[ep] = round2(sum / float64(s.ByEndpoint[ep]))
	}
	return s, nil
}

// TopEndpoints returns endpoints ordered by request count, most requested first.
func (s Summary) TopEndpoints() []string {
	out := make([]string, 0, len(s.ByEndpoint))
	for ep := range s.ByEndpoint {
		out = append(out, ep)
	}
	sort.Slice(out, func(i, j int) bool {
		if s.ByEndpoint[out[i]] != s.ByEndpoint[out[j]] {
			return s.ByEndpoint[out[i]] > s.ByEndpoint[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
