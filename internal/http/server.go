// Package http exposes the ledger and the credential store over JSON.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"foyer/internal/auth"
	"foyer/internal/cache"
	applog "foyer/internal/log"
	"foyer/internal/services"
)

type Server struct {
	http.Server
	ledger      *services.LedgerService
	auth        *auth.Store
	rateLimiter *rateLimiter

	// Dashboard responses keyed by ledger version: a cached entry is always
	// byte-identical to a fresh recompute of the same version.
	dashCache *cache.LRU[[]byte]

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, ledgerSvc *services.LedgerService, authStore *auth.Store) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:      ledgerSvc,
		auth:        authStore,
		rateLimiter: newRateLimiter(),
		dashCache:   cache.New[[]byte](32, 5*time.Minute),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /login", s.withSecurityHeaders(s.handleLogin))
	mux.HandleFunc("POST /register", s.withSecurityHeaders(s.handleRegister))
	mux.HandleFunc("POST /logout", s.withSecurityHeaders(s.handleLogout))
	mux.HandleFunc("GET /session", s.withSecurityHeaders(s.handleSession))
	mux.HandleFunc("GET /members", s.withSecurityHeaders(s.protected(s.handleMembers)))

	mux.HandleFunc("GET /incomes", s.withSecurityHeaders(s.protected(s.handleListIncomes)))
	mux.HandleFunc("POST /incomes", s.withSecurityHeaders(s.protected(s.handleCreateIncome)))
	mux.HandleFunc("PUT /incomes/{id}", s.withSecurityHeaders(s.protected(s.handleUpdateIncome)))
	mux.HandleFunc("DELETE /incomes/{id}", s.withSecurityHeaders(s.protected(s.handleDeleteIncome)))
	mux.HandleFunc("DELETE /incomes", s.withSecurityHeaders(s.protected(s.handleClearIncomes)))

	mux.HandleFunc("GET /expenses", s.withSecurityHeaders(s.protected(s.handleListExpenses)))
	mux.HandleFunc("POST /expenses", s.withSecurityHeaders(s.protected(s.handleCreateExpense)))
	mux.HandleFunc("PUT /expenses/{id}", s.withSecurityHeaders(s.protected(s.handleUpdateExpense)))
	mux.HandleFunc("DELETE /expenses/{id}", s.withSecurityHeaders(s.protected(s.handleDeleteExpense)))
	mux.HandleFunc("DELETE /expenses", s.withSecurityHeaders(s.protected(s.handleClearExpenses)))

	mux.HandleFunc("GET /bills", s.withSecurityHeaders(s.protected(s.handleListBills)))
	mux.HandleFunc("POST /bills", s.withSecurityHeaders(s.protected(s.handleCreateBill)))
	mux.HandleFunc("PUT /bills/{id}", s.withSecurityHeaders(s.protected(s.handleUpdateBill)))
	mux.HandleFunc("POST /bills/{id}/pay", s.withSecurityHeaders(s.protected(s.handlePayBill)))
	mux.HandleFunc("DELETE /bills/{id}", s.withSecurityHeaders(s.protected(s.handleDeleteBill)))
	mux.HandleFunc("DELETE /bills", s.withSecurityHeaders(s.protected(s.handleClearBills)))

	mux.HandleFunc("GET /reimbursements", s.withSecurityHeaders(s.protected(s.handleListReimbursements)))
	mux.HandleFunc("POST /reimbursements", s.withSecurityHeaders(s.protected(s.handleCreateReimbursement)))
	mux.HandleFunc("PUT /reimbursements/{id}", s.withSecurityHeaders(s.protected(s.handleUpdateReimbursement)))
	mux.HandleFunc("DELETE /reimbursements/{id}", s.withSecurityHeaders(s.protected(s.handleDeleteReimbursement)))
	mux.HandleFunc("DELETE /reimbursements", s.withSecurityHeaders(s.protected(s.handleClearReimbursements)))

	mux.HandleFunc("GET /savings", s.withSecurityHeaders(s.protected(s.handleListSavings)))
	mux.HandleFunc("POST /savings", s.withSecurityHeaders(s.protected(s.handleCreateSaving)))
	mux.HandleFunc("PUT /savings/{id}", s.withSecurityHeaders(s.protected(s.handleUpdateSaving)))
	mux.HandleFunc("DELETE /savings/{id}", s.withSecurityHeaders(s.protected(s.handleDeleteSaving)))
	mux.HandleFunc("DELETE /savings", s.withSecurityHeaders(s.protected(s.handleClearSavings)))

	mux.HandleFunc("GET /transactions", s.withSecurityHeaders(s.protected(s.handleTransactions)))
	mux.HandleFunc("GET /dashboard/totals", s.withSecurityHeaders(s.protected(s.handleTotals)))
	mux.HandleFunc("GET /dashboard/expenses-by-category", s.withSecurityHeaders(s.protected(s.handleExpensesByCategory)))
	mux.HandleFunc("GET /dashboard/income-by-source", s.withSecurityHeaders(s.protected(s.handleIncomeBySource)))
	mux.HandleFunc("GET /dashboard/bills-by-status", s.withSecurityHeaders(s.protected(s.handleBillsByStatus)))

	return s
}

// Shutdown stops the cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting on mutations,
// and request logging.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := clientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds())
	}
}

// protected rejects requests while no session identity is established.
func (s *Server) protected(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.auth.Current(); !ok {
			writeError(w, http.StatusUnauthorized, "not logged in")
			return
		}
		next(w, r)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
