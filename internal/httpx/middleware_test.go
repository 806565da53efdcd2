package httpx

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := SecurityHeadersMiddleware(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("Expected X-Content-Type-Options nosniff, got %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("Expected X-Frame-Options DENY, got %q", got)
	}
	if got := w.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("Expected no HSTS header when disabled, got %q", got)
	}
}

func TestSecurityHeadersMiddleware_HSTS(t *testing.T) {
	handler := SecurityHeadersMiddleware(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Header().Get("Strict-Transport-Security") == "" {
		t.Error("Expected HSTS header when enabled")
	}
}

func TestRequestSizeLimitMiddleware_UnderLimit(t *testing.T) {
	handler := RequestSizeLimitMiddleware(1024)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBuffer(make([]byte, 512)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for request under limit, got %d", w.Code)
	}
}

func TestRequestSizeLimitMiddleware_OverLimit(t *testing.T) {
	handler := RequestSizeLimitMiddleware(1024)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBuffer(make([]byte, 2048)))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413 for request over limit, got %d", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimitMiddleware(1, 2)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	var lastRetryAfter string
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
		req.RemoteAddr = "198.51.100.7:1000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		lastRetryAfter = w.Header().Get("Retry-After")
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("Expected burst of 2 to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected third request to be limited, got %d", codes[2])
	}
	if got := lastRetryAfter; got != "1" {
		t.Errorf("Expected Retry-After 1, got %q", got)
	}

	other := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
	other.RemoteAddr = "198.51.100.8:1000"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, other)
	if w.Code != http.StatusOK {
		t.Errorf("Expected a different client to have its own bucket, got %d", w.Code)
	}
}

func TestRateLimitMiddleware_SweepsIdleBuckets(t *testing.T) {
	rl := NewRateLimitMiddleware(1, 1)
	defer rl.Stop()

	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("198.51.100.7")
	now = now.Add(4 * time.Minute)
	rl.allow("198.51.100.8")

	now = now.Add(2 * time.Minute)
	if remaining := rl.sweep(); remaining != 1 {
		t.Fatalf("Expected only the recently seen bucket to remain, got %d", remaining)
	}

	if ok, _ := rl.allow("198.51.100.8"); !ok {
		t.Fatal("Expected the surviving bucket to have refilled")
	}
	ok, wait := rl.allow("198.51.100.8")
	if ok {
		t.Fatal("Expected the bucket to be empty after spending its token")
	}
	if wait <= 0 || wait > time.Second {
		t.Errorf("Expected a wait of at most one second, got %v", wait)
	}
}

func TestRetryAfter(t *testing.T) {
	cases := map[time.Duration]string{
		0:                       "1",
		300 * time.Millisecond:  "1",
		1500 * time.Millisecond: "2",
		3 * time.Second:         "3",
	}
	for wait, want := range cases {
		if got := retryAfter(wait); got != want {
			t.Errorf("retryAfter(%v) = %q, want %q", wait, got, want)
		}
	}
}
