package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// Client starts jobs on the external scraper that rewrites the book store.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	endpoint    string
	limiter     *rate.Limiter
	maxRetries  int
	backoffBase time.Duration
}

func NewClient(endpoint, userAgent string, rps int, maxRetries int) *Client {
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent:   userAgent,
		endpoint:    endpoint,
		limiter:     rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries:  maxRetries,
		backoffBase: time.Second,
	}
}

// JobRequest is the body posted to the scraper.
type JobRequest struct {
	RunID       string    `json:"run_id"`
	RequestedBy string    `json:"requested_by"`
	RequestedAt time.Time `json:"requested_at"`
}

// JobResponse is what the scraper answers once it accepted a job.
type JobResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// StartJob posts req and returns once the scraper accepted it. The scrape itself runs remotely.
func (c *Client) StartJob(ctx context.Context, req JobRequest) (*JobResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var res JobResponse
	if err := c.post(ctx, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) post(ctx context.Context, body []byte, target any) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1x, 2x, 4x...
			backoff := time.Duration(1<<uint(i-1)) * c.backoffBase
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retry, err := c.do(ctx, body, target)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context, body []byte, target any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK, resp.StatusCode == http.StatusCreated, resp.StatusCode == http.StatusAccepted:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		_, _ = io.Copy(io.Discard, resp.Body)
		return true, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	default:
		return false, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return false, nil
	}
	return false, json.Unmarshal(raw, target)
}
