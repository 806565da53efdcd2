package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/accesslog"
	"github.com/Lorrany-Marra/tech-challenge-fase1/internal/auth"
)

// SampleStore is a small backing store in the scraper's column layout.
const SampleStore = "\xEF\xBB\xBFTítulo;Categoria;Preço;Rating;Disponibilidade;Imagem\n" +
	"A Light in the Attic;Poetry;51.77;Three;In stock;https://books.toscrape.com/media/a.jpg\n" +
	"Tipping the Velvet;Historical Fiction;53.74;One;In stock;https://books.toscrape.com/media/b.jpg\n" +
	"Soumission;Fiction;50.10;One;In stock;https://books.toscrape.com/media/c.jpg\n" +
	"Sharp Objects;Mystery;47.82;Four;In stock;https://books.toscrape.com/media/d.jpg\n" +
	"Sapiens: A Brief History of Humankind;History;54.23;Five;In stock;https://books.toscrape.com/media/e.jpg\n" +
	"Harry Potter and the Half-Blood Prince;Fantasy;29,99;Five;In stock;https://books.toscrape.com/media/f.jpg\n"

// SampleStoreSize is the number of rows in SampleStore.
const SampleStoreSize = 6

// WriteStore writes content to a temporary store file and returns its path.
func WriteStore(t testing.TB, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "livros.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write store: %v", err)
	}
	return path
}

// AccessLog collects entries in memory.
type AccessLog struct {
	mu      sync.Mutex
	entries []accesslog.Entry
}

func (l *AccessLog) Record(e accesslog.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

// Entries returns a copy of what has been recorded.
func (l *AccessLog) Entries() []accesslog.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]accesslog.Entry(nil), l.entries...)
}

// Last returns the most recent entry.
func (l *AccessLog) Last() (accesslog.Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return accesslog.Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// IssueToken logs in through svc and fails the test on error.
func IssueToken(t testing.TB, svc *auth.Service, username, password string) string {
	t.Helper()
	token, err := svc.Login(context.Background(), username, password)
	if err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
	return token.AccessToken
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewRequestWithAuth creates a new HTTP request with JWT auth for testing
func NewRequestWithAuth(method, path string, body interface{}, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

// NewFormRequest creates a url-encoded form POST.
func NewFormRequest(path string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// Data returns the "data" member of a success envelope.
func (r RecordResponse) Data() any {
	return r.Body["data"]
}

// ErrorCode returns error.code of an error envelope, or "".
func (r RecordResponse) ErrorCode() string {
	errBody, ok := r.Body["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errBody["code"].(string)
	return code
}

// AssertResponseCode checks if the response code matches expected
func AssertResponseCode(t interface {
	Errorf(format string, args ...any)
}, got, want int) {
	if got != want {
		t.Errorf("got status code %d, want %d", got, want)
	}
}
