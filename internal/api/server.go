// Package api provides the HTTP surface of the progression engine. All
// gameplay logic lives in the app packages; handlers only decode, call,
// and encode.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/soccorso-app/soccorso/internal/app/progression"
	"github.com/soccorso-app/soccorso/internal/app/wallet"
	"github.com/soccorso-app/soccorso/internal/health"
)

// Server is the progression HTTP API server.
type Server struct {
	progress       *progression.Service
	wallet         *wallet.Service
	checker        *health.Checker
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(progress *progression.Service) *Server {
	return &Server{progress: progress}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetWallet attaches the XP ledger for the history endpoint.
func (s *Server) SetWallet(w *wallet.Service) { s.wallet = w }

// SetHealthChecker attaches the liveness checker to /health.
func (s *Server) SetHealthChecker(c *health.Checker) { s.checker = c }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Minute))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/daily-challenge", s.handleDailyChallenge)
		r.Get("/leaderboard", s.handleLeaderboard)

		r.Route("/players/{player}", func(r chi.Router) {
			r.Get("/progress", s.handleProgress)
			r.Post("/login", s.handleLogin)
			r.Post("/changes", s.handleChanges)

			r.Get("/quests", s.handleQuests)
			r.Post("/quests/claim", s.handleClaimQuests)

			r.Post("/exams", s.handleStartExam)
			r.Post("/exams/{session}/answers", s.handleAnswer)
			r.Post("/exams/{session}/powerups", s.handlePowerup)
			r.Post("/exams/{session}/finish", s.handleFinishExam)

			r.Get("/practice", s.handlePractice)
			r.Post("/purchases", s.handlePurchase)
		})

		if s.wallet != nil {
			r.Get("/wallet/history", s.handleWalletHistory)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.checker != nil {
		statuses := s.checker.Statuses()
		for _, st := range statuses {
			if !st.Healthy {
				writeJSON(w, http.StatusServiceUnavailable, map[string]any{
					"status": "degraded", "checks": statuses,
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "checks": statuses})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for the local web client.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
