// Package source implements the snapshot sources the surveys read from:
// plain HTTP JSON endpoints, JSON-RPC servers, websocket RPC servers, a
// sqlite crawler database, NDJSON crawl dumps and CSV exports. Every source
// converts transport and decode problems into a single error so the caller
// can abort the pipeline without partial output.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	defaultTimeout = 10 * time.Second

	// Transient transport failures are retried twice more with a
	// linearly growing wait (1s, 2s).
	retryAttempts = 2
	retryBase     = time.Second
)

// Client performs JSON requests against the public node directories.
type Client struct {
	http *http.Client
}

// NewClient constructs a client with the specified per-request timeout.
// A zero timeout selects the default of 10 seconds.
func NewClient(timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// GetJSON fetches the url and decodes the JSON response into v.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, v any) error {
	return c.do(ctx, http.MethodGet, url, headers, nil, v)
}

// PostJSON posts the body as JSON to the url and decodes the response into v.
func (c *Client) PostJSON(ctx context.Context, url string, headers map[string]string, body any, v any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, url, headers, data, v)
}

func (c *Client) do(ctx context.Context, method string, url string, headers map[string]string, body []byte, v any) error {
	backoff := retry.WithMaxRetries(retryAttempts, linearBackoff(retryBase))

	op := func(ctx context.Context) error {
		var rdr io.Reader
		if body != nil {
			rdr = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, rdr)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("requesting %s: %w", url, err))
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			err := fmt.Errorf("requesting %s: status %d: %s", url, resp.StatusCode, msg)
			if resp.StatusCode >= http.StatusInternalServerError {
				return retry.RetryableError(err)
			}
			return err
		}

		// A malformed document will not get better on retry.
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("decoding response from %s: %w", url, err)
		}

		return nil
	}

	return retry.Do(ctx, backoff, op)
}

// linearBackoff waits base, 2*base, 3*base between successive attempts.
func linearBackoff(base time.Duration) retry.Backoff {
	var attempt int64
	return retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return time.Duration(attempt) * base, false
	})
}
