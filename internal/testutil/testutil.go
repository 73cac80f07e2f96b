package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
)

// MockClient is a mock implementation of the resolver's transport for
// testing the walk without real HTTP.
type MockClient struct {
	GetFunc func(ctx context.Context, url string) ([]byte, error)

	calls int64
}

// Get implements the transport interface
func (m *MockClient) Get(ctx context.Context, url string) ([]byte, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.GetFunc != nil {
		return m.GetFunc(ctx, url)
	}
	return nil, nil
}

// Calls returns how many times Get was invoked
func (m *MockClient) Calls() int {
	return int(atomic.LoadInt64(&m.calls))
}

// NewJSONServer creates an httptest server that always responds with
// the given status and body, counting requests via the returned
// counter.
func NewJSONServer(status int, body string) (*httptest.Server, *int64) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	return srv, &calls
}
