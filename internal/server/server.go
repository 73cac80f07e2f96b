// Package server wires the aggregator to its inbound HTTP surface.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"goldrates/internal/aggregator"
	"goldrates/internal/metrics"
	"goldrates/internal/pricing"
)

// Aggregator is the resolution entry point the server invokes per
// request.
type Aggregator interface {
	Resolve(ctx context.Context) aggregator.Result
}

// Server serves the price table over HTTP.
type Server struct {
	agg     Aggregator
	timeout time.Duration
	log     *slog.Logger
}

// New creates a Server. timeout bounds one full resolution, covering
// both provider walks.
func New(agg Aggregator, timeout time.Duration) *Server {
	return &Server{
		agg:     agg,
		timeout: timeout,
		log:     slog.Default().With("component", "server"),
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gold", s.handleGold)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// goldResponse is the wire shape of a successful resolution. Fallback
// results are successes too: degraded upstream availability is only
// visible through the source field.
type goldResponse struct {
	Prices  pricing.Table `json:"prices"`
	Updated string        `json:"updated"`
	Source  string        `json:"source"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (s *Server) handleGold(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSON(w, r, http.StatusMethodNotAllowed, errorResponse{
			Error:  "method not allowed",
			Detail: fmt.Sprintf("method %s is not supported", r.Method),
		})
		return
	}

	// The resolvers absorb every upstream failure into fallback
	// outcomes, so only a programming error can reach this recover.
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("aggregation failed", "panic", rec)
			s.writeJSON(w, r, http.StatusInternalServerError, errorResponse{
				Error:  "aggregation failed",
				Detail: fmt.Sprint(rec),
			})
		}
	}()

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result := s.agg.Resolve(ctx)

	// Short public cache lifetime: intermediaries may cache, but never
	// serve stale prices for long.
	w.Header().Set("Cache-Control", "public, max-age=10, s-maxage=10")
	s.writeJSON(w, r, http.StatusOK, goldResponse{
		Prices:  result.Prices,
		Updated: result.Updated.Format(time.RFC3339),
		Source:  result.Source,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
	metrics.HTTPRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(status)).Inc()
}
