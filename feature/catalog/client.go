package catalog

import (
	"context"
	"fmt"
	"time"

	"pocket-cards/core/reconcile"

	"github.com/go-resty/resty/v2"
)

// DocumentFetcher downloads the master catalog document.
type DocumentFetcher interface {
	Fetch(ctx context.Context) (*reconcile.CatalogDocument, error)
}

// Client downloads the catalog over HTTP.
type Client struct {
	url  string
	http *resty.Client
}

// NewClient creates a catalog client from the configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}

	http := resty.New().
		SetTimeout(time.Duration(timeout) * time.Second).
		SetRetryCount(cfg.RetryMax).
		SetRetryWaitTime(time.Second).
		SetHeader("Accept", "application/json")

	return &Client{url: cfg.URL, http: http}
}

// Fetch downloads and decodes the catalog. Any status other than 200 is an error.
func (c *Client) Fetch(ctx context.Context) (*reconcile.CatalogDocument, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to download catalog: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("failed to download catalog: %s returned HTTP %d", c.url, resp.StatusCode())
	}

	return reconcile.DecodeCatalog(body)
}
