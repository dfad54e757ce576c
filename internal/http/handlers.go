package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"finadvisor/internal/analysis"
	"finadvisor/internal/core"
	"finadvisor/internal/demo"
	"finadvisor/internal/ingest"
)

const backendTimeout = 7 * time.Second

// refTime reads the optional ?ref=YYYY-MM-DD parameter that pins the
// reporting window for deterministic queries; it defaults to now.
func refTime(r *http.Request) time.Time {
	if v := strings.TrimSpace(r.URL.Query().Get("ref")); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
	}
	return time.Now()
}

func (s *Server) loadTransactions(ctx context.Context) ([]core.Transaction, error) {
	cctx, cancel := context.WithTimeout(ctx, backendTimeout)
	defer cancel()
	return s.backend.ListTransactions(cctx)
}

func (s *Server) loadGoals(ctx context.Context) ([]core.Goal, error) {
	cctx, cancel := context.WithTimeout(ctx, backendTimeout)
	defer cancel()
	return s.backend.ListGoals(cctx)
}

// computeMetrics returns the summary for ref's reporting window, served
// from cache when fresh.
func (s *Server) computeMetrics(ctx context.Context, ref time.Time) (core.MetricsResult, string, error) {
	window := analysis.PreviousMonth(ref)
	key := window.Label()

	if m, found := s.metricsCache.Get(key); found {
		slog.DebugContext(ctx, "Metrics cache hit", "period", key)
		return m, key, nil
	}

	txs, err := s.loadTransactions(ctx)
	if err != nil {
		return core.MetricsResult{}, key, err
	}
	m := analysis.ComputeMetricsWindow(txs, window)
	s.metricsCache.Set(key, m)
	return m, key, nil
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	m, period, err := s.computeMetrics(r.Context(), refTime(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "Metrics computation failed", "error", err)
		writeError(w, http.StatusBadGateway, "transaction source unavailable")
		return
	}
	writeJSON(w, http.StatusOK, metricsResponse(period, m))
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	m, _, err := s.computeMetrics(r.Context(), refTime(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "Metrics computation failed", "error", err)
		writeError(w, http.StatusBadGateway, "transaction source unavailable")
		return
	}

	goals, err := s.loadGoals(r.Context())
	if err != nil {
		// Recommendations degrade gracefully without goals; the
		// goal-focused rule simply cannot fire.
		slog.WarnContext(r.Context(), "Goal source unavailable", "error", err)
		goals = nil
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"recommendations": recommendations(analysis.Recommend(m, goals)),
	})
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	txs, err := s.loadTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, "transaction source unavailable")
		return
	}

	patterns := analysis.DetectPatterns(txs)
	if patterns == nil {
		patterns = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"patterns": patterns})
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ref := refTime(r)
	txs, err := s.loadTransactions(r.Context())
	if err != nil {
		// Keep the demo view alive with clearly labeled placeholder data.
		slog.WarnContext(r.Context(), "Transaction fetch failed, serving synthetic trend", "error", err)
		writeJSON(w, http.StatusOK, map[string]any{
			"trends":    trendPoints(demo.SyntheticTrend(ref, s.demoSeed)),
			"synthetic": true,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"trends":    trendPoints(analysis.ComputeTrends(txs)),
		"synthetic": false,
	})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	// Accept a single record or a list; both spellings of every field.
	data := bytes.TrimSpace(body)
	if len(data) > 0 && data[0] == '{' {
		data = append(append([]byte{'['}, data...), ']')
	}
	txs, err := ingest.TransactionsJSON(data, time.Now())
	if err != nil {
		if errors.Is(err, ingest.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "body must be a transaction record or list")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(txs) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "no transaction records in body")
		return
	}

	refs := make([]string, 0, len(txs))
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		ref, err := s.backend.AddTransaction(r.Context(), tx)
		if err != nil {
			slog.ErrorContext(r.Context(), "Transaction write failed",
				"error", err, "category", tx.Category, "amount_cents", tx.Amount.Cents)
			writeError(w, http.StatusInternalServerError, "could not store transaction")
			return
		}
		refs = append(refs, ref)
	}

	// New transactions invalidate every cached window.
	s.metricsCache.Purge()

	writeJSON(w, http.StatusCreated, map[string]any{"refs": refs})
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	data := bytes.TrimSpace(body)
	if len(data) > 0 && data[0] == '{' {
		data = append(append([]byte{'['}, data...), ']')
	}
	goals, err := ingest.GoalsJSON(data)
	if err != nil {
		if errors.Is(err, ingest.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "body must be a goal record or list")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(goals) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "no goal records in body")
		return
	}

	refs := make([]string, 0, len(goals))
	for _, g := range goals {
		if err := g.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		ref, err := s.backend.AddGoal(r.Context(), g)
		if err != nil {
			slog.ErrorContext(r.Context(), "Goal write failed",
				"error", err, "title", g.Title)
			writeError(w, http.StatusInternalServerError, "could not store goal")
			return
		}
		refs = append(refs, ref)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"refs": refs})
}
