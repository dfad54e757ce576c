// Package http exposes the dashboard's JSON API: the computed monthly
// metrics, recommendations, patterns and trends, plus transaction ingest.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"finadvisor/internal/backend"
	"finadvisor/internal/core"
)

type Server struct {
	http.Server
	backend     backend.Backend
	rateLimiter *rateLimiter
	collector   *Collector
	demoSeed    int64

	// Cached per-window metrics; purged on every write.
	metricsCache *lruCache[core.MetricsResult]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, b backend.Backend, demoSeed int64) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		backend:          b,
		rateLimiter:      newRateLimiter(),
		collector:        NewCollector("finadvisor"),
		demoSeed:         demoSeed,
		metricsCache:     newLRUCache[core.MetricsResult](100, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("/api/metrics", s.withMiddleware(s.handleMetrics))
	mux.HandleFunc("/api/recommendations", s.withMiddleware(s.handleRecommendations))
	mux.HandleFunc("/api/patterns", s.withMiddleware(s.handlePatterns))
	mux.HandleFunc("/api/trends", s.withMiddleware(s.handleTrends))
	mux.HandleFunc("/api/transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("/api/goals", s.withMiddleware(s.handleCreateGoal))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.Handle("/metrics", s.collector.Handler())

	return s
}

// withMiddleware adds security headers, rate limiting on writes, request
// logging and Prometheus accounting.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"client_ip", clientIP)

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			s.collector.RecordRequest(r.URL.Path, r.Method, http.StatusTooManyRequests, time.Since(start))
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		elapsed := time.Since(start)
		s.collector.RecordRequest(r.URL.Path, r.Method, rw.statusCode, elapsed)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", elapsed.Milliseconds())
	}
}

type requestIDKey struct{}

// responseWriter captures the status code for logging and metrics.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.metricsCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
