// Package accesslog persists one structured record per API request and summarizes them.
package accesslog

import "time"

// Entry is one served request. Entries are only ever appended.
type Entry struct {
	Time           time.Time `json:"time"`
	Endpoint       string    `json:"endpoint"`
	Method         string    `json:"method"`
	ClientIP       string    `json:"ip"`
	StatusCode     int       `json:"status_code"`
	ResponseTimeMs float64   `json:"response_time_ms"`
	RequestID      string    `json:"request_id,omitempty"`
}

// IsError reports whether the request ended with a 4xx or 5xx status.
func (e Entry) IsError() bool {
	return e.StatusCode >= 400
}
