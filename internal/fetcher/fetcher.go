package fetcher

import (
	"context"
	"errors"
	"net"
	"time"

	"resty.dev/v3"
)

// Client performs a single HTTP GET against an upstream provider with
// timeout, retry, and backoff applied uniformly. It is the one shared
// transport for both resolvers; payload parsing is the caller's job.
type Client struct {
	http *resty.Client
}

// New creates a Client. At most retries+1 attempts are made per Get.
func New(timeout time.Duration, retries int, backoffBase time.Duration) *Client {
	return &Client{
		http: newHTTPClient(timeout, retries, backoffBase),
	}
}

// Get fetches the raw response body from url. It returns the body on
// any 2xx status; otherwise a *FetchError carrying the last underlying
// cause after the retry budget is exhausted. Cancelling ctx aborts the
// in-flight attempt and suppresses further retries.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		if isTimeout(err) {
			return nil, NewTimeoutError(err)
		}
		return nil, NewNetworkError(err)
	}

	if !resp.IsSuccess() {
		return nil, ClassifyHTTPError(resp.StatusCode())
	}

	return resp.Bytes(), nil
}

// isTimeout reports whether err stems from the per-attempt deadline
// rather than a reachability problem.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
