package http

import (
	"net/http"

	"foyer/internal/core"
	"foyer/internal/ledger"
)

// Request bodies carry amounts as decimal strings ("1234.56" or "1234,56")
// and dates as YYYY-MM-DD; responses carry amounts as integer cents.

type incomeRequest struct {
	Member   string `json:"member"`
	Source   string `json:"source"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Category string `json:"category"`
}

func (req incomeRequest) toIncome() (core.Income, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return core.Income{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Income{}, err
	}
	in := core.Income{
		Member:   req.Member,
		Source:   req.Source,
		Amount:   amount,
		Date:     date,
		Category: req.Category,
	}
	return in, in.Validate()
}

type expenseRequest struct {
	Member      string `json:"member"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Category    string `json:"category"`
}

func (req expenseRequest) toExpense() (core.Expense, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return core.Expense{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Expense{}, err
	}
	e := core.Expense{
		Member:      req.Member,
		Description: req.Description,
		Amount:      amount,
		Date:        date,
		Category:    req.Category,
	}
	return e, e.Validate()
}

type billRequest struct {
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	DueDate    string `json:"due_date"`
	Status     string `json:"status"`
	AssignedTo string `json:"assigned_to"`
}

func (req billRequest) toBill() (core.Bill, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return core.Bill{}, err
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		return core.Bill{}, err
	}
	status := core.BillStatus(req.Status)
	if req.Status == "" {
		status = core.BillPending
	}
	b := core.Bill{
		Name:       req.Name,
		Amount:     amount,
		DueDate:    due,
		Status:     status,
		AssignedTo: req.AssignedTo,
	}
	return b, b.Validate()
}

type reimbursementRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
	Reason string `json:"reason"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

func (req reimbursementRequest) toReimbursement() (core.Reimbursement, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return core.Reimbursement{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Reimbursement{}, err
	}
	status := core.ReimbursementStatus(req.Status)
	if req.Status == "" {
		status = core.ReimbursementPending
	}
	rb := core.Reimbursement{
		From:   req.From,
		To:     req.To,
		Amount: amount,
		Reason: req.Reason,
		Date:   date,
		Status: status,
	}
	return rb, rb.Validate()
}

type savingRequest struct {
	Goal          string `json:"goal"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
	Deadline      string `json:"deadline"`
}

func (req savingRequest) toSaving() (core.Saving, error) {
	target, err := parseAmount(req.TargetAmount)
	if err != nil {
		return core.Saving{}, err
	}
	// Zero is a legitimate starting balance for a goal.
	current, err := parseBalance(req.CurrentAmount)
	if err != nil {
		return core.Saving{}, err
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		return core.Saving{}, err
	}
	sv := core.Saving{
		Goal:          req.Goal,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
	}
	return sv, sv.Validate()
}

func writeList[T any](w http.ResponseWriter, list []T) {
	if list == nil {
		list = []T{}
	}
	writeJSON(w, http.StatusOK, list)
}

func writeUpdateResult(w http.ResponseWriter, res ledger.UpdateResult, v any) {
	if res == ledger.NotFound {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func writeDeleteResult(w http.ResponseWriter, deleted bool) {
	if !deleted {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Incomes

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	writeList(w, s.ledger.Ledger().Snapshot().Incomes)
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := req.toIncome()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.ledger.AddIncome(r.Context(), in))
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := req.toIncome()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	id := r.PathValue("id")
	in.ID = id
	writeUpdateResult(w, s.ledger.UpdateIncome(r.Context(), id, in), in)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	writeDeleteResult(w, s.ledger.DeleteIncome(r.Context(), r.PathValue("id")))
}

func (s *Server) handleClearIncomes(w http.ResponseWriter, r *http.Request) {
	s.ledger.ClearIncomes(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Expenses

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	writeList(w, s.ledger.Ledger().Snapshot().Expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := req.toExpense()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.ledger.AddExpense(r.Context(), e))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := req.toExpense()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	id := r.PathValue("id")
	e.ID = id
	writeUpdateResult(w, s.ledger.UpdateExpense(r.Context(), id, e), e)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	writeDeleteResult(w, s.ledger.DeleteExpense(r.Context(), r.PathValue("id")))
}

func (s *Server) handleClearExpenses(w http.ResponseWriter, r *http.Request) {
	s.ledger.ClearExpenses(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Bills

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	writeList(w, s.ledger.Ledger().Snapshot().Bills)
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := req.toBill()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.ledger.AddBill(r.Context(), b))
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := req.toBill()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	id := r.PathValue("id")
	b.ID = id
	writeUpdateResult(w, s.ledger.UpdateBill(r.Context(), id, b), b)
}

func (s *Server) handlePayBill(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if s.ledger.MarkBillPaid(r.Context(), id) == ledger.NotFound {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	for _, b := range s.ledger.Ledger().Snapshot().Bills {
		if b.ID == id {
			writeJSON(w, http.StatusOK, b)
			return
		}
	}
	// Deleted between the mark and the read; treat like any other miss.
	writeError(w, http.StatusNotFound, "not found")
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	writeDeleteResult(w, s.ledger.DeleteBill(r.Context(), r.PathValue("id")))
}

func (s *Server) handleClearBills(w http.ResponseWriter, r *http.Request) {
	s.ledger.ClearBills(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Reimbursements

func (s *Server) handleListReimbursements(w http.ResponseWriter, r *http.Request) {
	writeList(w, s.ledger.Ledger().Snapshot().Reimbursements)
}

func (s *Server) handleCreateReimbursement(w http.ResponseWriter, r *http.Request) {
	var req reimbursementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rb, err := req.toReimbursement()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.ledger.AddReimbursement(r.Context(), rb))
}

func (s *Server) handleUpdateReimbursement(w http.ResponseWriter, r *http.Request) {
	var req reimbursementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rb, err := req.toReimbursement()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	id := r.PathValue("id")
	rb.ID = id
	writeUpdateResult(w, s.ledger.UpdateReimbursement(r.Context(), id, rb), rb)
}

func (s *Server) handleDeleteReimbursement(w http.ResponseWriter, r *http.Request) {
	writeDeleteResult(w, s.ledger.DeleteReimbursement(r.Context(), r.PathValue("id")))
}

func (s *Server) handleClearReimbursements(w http.ResponseWriter, r *http.Request) {
	s.ledger.ClearReimbursements(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Savings

func (s *Server) handleListSavings(w http.ResponseWriter, r *http.Request) {
	writeList(w, s.ledger.Ledger().Snapshot().Savings)
}

func (s *Server) handleCreateSaving(w http.ResponseWriter, r *http.Request) {
	var req savingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sv, err := req.toSaving()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.ledger.AddSaving(r.Context(), sv))
}

func (s *Server) handleUpdateSaving(w http.ResponseWriter, r *http.Request) {
	var req savingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sv, err := req.toSaving()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	id := r.PathValue("id")
	if s.ledger.UpdateSaving(r.Context(), id, sv) == ledger.NotFound {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	// Re-read so the response carries the recomputed percentage.
	for _, stored := range s.ledger.Ledger().Snapshot().Savings {
		if stored.ID == id {
			writeJSON(w, http.StatusOK, stored)
			return
		}
	}
	writeError(w, http.StatusNotFound, "not found")
}

func (s *Server) handleDeleteSaving(w http.ResponseWriter, r *http.Request) {
	writeDeleteResult(w, s.ledger.DeleteSaving(r.Context(), r.PathValue("id")))
}

func (s *Server) handleClearSavings(w http.ResponseWriter, r *http.Request) {
	s.ledger.ClearSavings(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
