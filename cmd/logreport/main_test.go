package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/accesslog"
)

const sampleLog = `{"time":"2026-01-02T10:00:00Z","endpoint":"/api/v1/books","method":"GET","ip":"10.0.0.1","status_code":200,"response_time_ms":4.5,"request_id":"a"}
{"time":"2026-01-02T10:00:01Z","endpoint":"/api/v1/books","method":"GET","ip":"10.0.0.1","status_code":200,"response_time_ms":5.5,"request_id":"b"}
{"time":"2026-01-02T10:00:02Z","endpoint":"/api/v1/books/99","method":"GET","ip":"10.0.0.2","status_code":404,"response_time_ms":1,"request_id":"c"}
not json
`

func writeLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs_api.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out
	err := cmd.Run(context.Background(), append([]string{"logreport"}, args...))
	return out.String(), err
}

func TestLogreport_Text(t *testing.T) {
	out, err := run(t, "--file", writeLog(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Total requests:")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "33.33%")

	lines := strings.Split(out, "\n")
	var endpoints []string
	for _, l := range lines {
		if strings.HasPrefix(l, "/api/v1/") {
			endpoints = append(endpoints, strings.Fields(l)[0])
		}
	}
	assert.Equal(t, []string{"/api/v1/books", "/api/v1/books/99"}, endpoints)
}

func TestLogreport_JSON(t *testing.T) {
	out, err := run(t, "--file", writeLog(t), "--format", "json")
	require.NoError(t, err)

	var s accesslog.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 3, s.TotalRequests)
	assert.Equal(t, 2, s.ByEndpoint["/api/v1/books"])
	assert.Equal(t, 5.0, s.AverageByEndpoint["/api/v1/books"])
}

func TestLogreport_Top(t *testing.T) {
	out, err := run(t, "--file", writeLog(t), "--top", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "/api/v1/books ")
	assert.NotContains(t, out, "/api/v1/books/99")
}

func TestLogreport_Errors(t *testing.T) {
	_, err := run(t, "--file", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to open access log")

	_, err = run(t, "--file", writeLog(t), "--format", "yaml")
	assert.ErrorContains(t, err, "unknown output format")
}
