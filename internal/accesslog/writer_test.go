package accesslog

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Record(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	w.Record(Entry{
		Time:           at,
		Endpoint:       "/api/v1/books",
		Method:         "GET",
		ClientIP:       "10.0.0.1",
		StatusCode:     200,
		ResponseTimeMs: 1.25,
		RequestID:      "req-1",
	})

	var got map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got))
	assert.Equal(t, "/api/v1/books", got["endpoint"])
	assert.Equal(t, "GET", got["method"])
	assert.Equal(t, "10.0.0.1", got["ip"])
	assert.Equal(t, float64(200), got["status_code"])
	assert.Equal(t, 1.25, got["response_time_ms"])
	assert.Equal(t, "req-1", got["request_id"])
	assert.Equal(t, "request", got["message"])
}

func TestWriter_ConcurrentAppendsStayWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.json")
	w, err := Open(path)
	require.NoError(t, err)

	const goroutines, perGoroutine = 8, 50
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				w.Record(Entry{
					Time:       time.Now(),
					Endpoint:   "/api/v1/books/" + strings.Repeat("x", g),
					Method:     "GET",
					StatusCode: 200,
				})
			}
		}(g)
	}
	wg.Wait()
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	lines := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e), "line %d is not a whole entry", lines)
		lines++
	}
	assert.Equal(t, goroutines*perGoroutine, lines)
}

func TestOpen_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"endpoint":"/old","response_time_ms":1}`+"\n"), 0o644))

	w, err := Open(path)
	require.NoError(t, err)
	w.Record(Entry{Endpoint: "/new", Method: "GET", StatusCode: 404, ResponseTimeMs: 2})
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
	assert.True(t, strings.HasPrefix(string(data), `{"endpoint":"/old"`))
}

func TestWriter_IgnoresGlobalLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	NewWriter(&buf).Record(Entry{Time: time.Now(), Endpoint: "/api/v1/health", Method: "GET", StatusCode: 200})

	assert.Contains(t, buf.String(), `"endpoint":"/api/v1/health"`)
	assert.Contains(t, buf.String(), `"level":"info"`)
}
