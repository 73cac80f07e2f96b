package fetcher

import (
	"log/slog"
	"time"

	"resty.dev/v3"
)

// newHTTPClient builds the underlying resty client with the shared
// timeout, retry, and backoff behavior. Wait time grows between
// attempts and is capped, so total elapsed time per provider stays
// bounded by (retries+1) x timeout plus the backoff sum.
func newHTTPClient(timeout time.Duration, retries int, backoffBase time.Duration) *resty.Client {
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(backoffBase).
		SetRetryMaxWaitTime(time.Duration(retries+1) * backoffBase).
		AddRetryConditions(retryCondition).
		AddRetryHooks(retryHook)

	return client
}

// retryCondition determines whether a request should be retried based on the response and error
func retryCondition(r *resty.Response, err error) bool {
	// Retry on network errors and timeouts
	if err != nil {
		return true
	}

	// Retry on server errors (5xx)
	if r.StatusCode() >= 500 {
		return true
	}

	// Retry on rate limit (429) and request timeout (408)
	if r.StatusCode() == 429 || r.StatusCode() == 408 {
		return true
	}

	// Don't retry on other client errors; a 404 or 401 will not get
	// better on the next attempt and the next provider should be tried
	// instead.
	return false
}

// retryHook logs retry attempts for observability
func retryHook(r *resty.Response, err error) {
	if err != nil {
		slog.Debug("retrying upstream fetch due to error",
			"url", r.Request.URL,
			"attempt", r.Request.Attempt,
			"error", err.Error())
		return
	}

	slog.Debug("retrying upstream fetch due to status code",
		"url", r.Request.URL,
		"attempt", r.Request.Attempt,
		"status_code", r.StatusCode())
}
