package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"foyer/internal/core"
)

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	writeList(w, s.ledger.Ledger().Transactions())
}

// cachedJSON serves the marshaled aggregate for the current ledger version,
// computing and caching it on a miss.
func (s *Server) cachedJSON(w http.ResponseWriter, name string, compute func() any) {
	key := fmt.Sprintf("%s:v%d", name, s.ledger.Ledger().Version())
	if raw, ok := s.dashCache.Get(key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
		return
	}

	raw, err := json.Marshal(compute())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute aggregate")
		return
	}
	s.dashCache.Set(key, raw)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	s.cachedJSON(w, "totals", func() any {
		snap := s.ledger.Ledger().Snapshot()
		return core.ComputeTotals(snap.Incomes, snap.Expenses, snap.Bills, snap.Savings)
	})
}

func (s *Server) handleExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	s.cachedJSON(w, "expenses-by-category", func() any {
		return core.ExpensesByCategory(s.ledger.Ledger().Snapshot().Expenses)
	})
}

func (s *Server) handleIncomeBySource(w http.ResponseWriter, r *http.Request) {
	s.cachedJSON(w, "income-by-source", func() any {
		return core.IncomeBySource(s.ledger.Ledger().Snapshot().Incomes)
	})
}

func (s *Server) handleBillsByStatus(w http.ResponseWriter, r *http.Request) {
	s.cachedJSON(w, "bills-by-status", func() any {
		return core.BillsByStatus(s.ledger.Ledger().Snapshot().Bills)
	})
}
