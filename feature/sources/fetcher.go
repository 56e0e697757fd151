package sources

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher downloads pages with bounded retries and a politeness delay between
// requests. It is safe for concurrent use; requests are spaced globally.
type Fetcher struct {
	http  *resty.Client
	delay time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewFetcher creates a fetcher. defaultDelay applies when the configuration
// does not set one.
func NewFetcher(cfg Config, defaultDelay time.Duration) *Fetcher {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	wait := time.Duration(cfg.RetryWaitMillis) * time.Millisecond
	if wait <= 0 {
		wait = 500 * time.Millisecond
	}

	http := resty.New().
		SetTimeout(time.Duration(timeout)*time.Second).
		SetHeader("User-Agent", ua).
		SetRetryCount(cfg.RetryMax).
		SetRetryWaitTime(wait).
		SetRetryMaxWaitTime(10 * wait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == 429 || r.StatusCode() >= 500
		})

	return &Fetcher{http: http, delay: cfg.Delay(defaultDelay)}
}

// Get downloads a page body. Statuses other than 200 return an HTTPStatusError.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := f.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", url, err)
	}
	if resp.StatusCode() != 200 {
		return nil, &HTTPStatusError{URL: url, StatusCode: resp.StatusCode()}
	}
	return resp.Body(), nil
}

// wait blocks until the politeness delay since the previous request has passed.
func (f *Fetcher) wait(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.delay > 0 && !f.last.IsZero() {
		if d := f.delay - time.Since(f.last); d > 0 {
			t := time.NewTimer(d)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
	}
	f.last = time.Now()
	return nil
}
