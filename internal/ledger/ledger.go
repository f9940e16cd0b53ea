// Package ledger owns the five mutable collections of the household budget
// and the derived transaction view. It is the single source of truth: all
// mutation goes through it, and every mutation bumps a version counter used
// by read-side caches.
package ledger

import (
	"strconv"
	"sync"

	"foyer/internal/core"
)

// UpdateResult reports whether an update found its target. Missing ids have
// always been tolerated as silent no-ops; the enum exists so callers and
// tests can observe the distinction without changing that behavior.
type UpdateResult int

const (
	NotFound UpdateResult = iota
	Updated
)

// Snapshot is a copy of the five collections at a single instant.
type Snapshot struct {
	Incomes        []core.Income
	Expenses       []core.Expense
	Bills          []core.Bill
	Reimbursements []core.Reimbursement
	Savings        []core.Saving
}

type Ledger struct {
	mu             sync.Mutex
	nextID         int64
	version        int64
	incomes        []core.Income
	expenses       []core.Expense
	bills          []core.Bill
	reimbursements []core.Reimbursement
	savings        []core.Saving
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{nextID: 1}
}

// newID hands out identifiers that are unique for the lifetime of the
// ledger and never reused after deletion. Callers must hold mu.
func (l *Ledger) newID() string {
	id := strconv.FormatInt(l.nextID, 10)
	l.nextID++
	return id
}

// Version increases monotonically with every mutation.
func (l *Ledger) Version() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// AddIncome assigns a fresh id and appends. The stored entry is returned.
func (l *Ledger) AddIncome(in core.Income) core.Income {
	l.mu.Lock()
	defer l.mu.Unlock()
	in.ID = l.newID()
	l.incomes = append(l.incomes, in)
	l.version++
	return in
}

func (l *Ledger) AddExpense(in core.Expense) core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	in.ID = l.newID()
	l.expenses = append(l.expenses, in)
	l.version++
	return in
}

func (l *Ledger) AddBill(in core.Bill) core.Bill {
	l.mu.Lock()
	defer l.mu.Unlock()
	in.ID = l.newID()
	l.bills = append(l.bills, in)
	l.version++
	return in
}

func (l *Ledger) AddReimbursement(in core.Reimbursement) core.Reimbursement {
	l.mu.Lock()
	defer l.mu.Unlock()
	in.ID = l.newID()
	l.reimbursements = append(l.reimbursements, in)
	l.version++
	return in
}

// AddSaving assigns an id and stores the goal percentage alongside the
// amounts. The percentage is not recomputed again until the next write.
func (l *Ledger) AddSaving(in core.Saving) core.Saving {
	l.mu.Lock()
	defer l.mu.Unlock()
	in.ID = l.newID()
	in.Percentage = core.GoalPercentage(in.CurrentAmount, in.TargetAmount)
	l.savings = append(l.savings, in)
	l.version++
	return in
}

// UpdateIncome replaces every field except the id of the matching entry.
func (l *Ledger) UpdateIncome(id string, in core.Income) UpdateResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.incomes {
		if l.incomes[i].ID == id {
			in.ID = id
			l.incomes[i] = in
			l.version++
			return Updated
		}
	}
	return NotFound
}

func (l *Ledger) UpdateExpense(id string, in core.Expense) UpdateResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.expenses {
		if l.expenses[i].ID == id {
			in.ID = id
			l.expenses[i] = in
			l.version++
			return Updated
		}
	}
	return NotFound
}

func (l *Ledger) UpdateBill(id string, in core.Bill) UpdateResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.bills {
		if l.bills[i].ID == id {
			in.ID = id
			l.bills[i] = in
			l.version++
			return Updated
		}
	}
	return NotFound
}

func (l *Ledger) UpdateReimbursement(id string, in core.Reimbursement) UpdateResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.reimbursements {
		if l.reimbursements[i].ID == id {
			in.ID = id
			l.reimbursements[i] = in
			l.version++
			return Updated
		}
	}
	return NotFound
}

func (l *Ledger) UpdateSaving(id string, in core.Saving) UpdateResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.savings {
		if l.savings[i].ID == id {
			in.ID = id
			in.Percentage = core.GoalPercentage(in.CurrentAmount, in.TargetAmount)
			l.savings[i] = in
			l.version++
			return Updated
		}
	}
	return NotFound
}

// MarkBillPaid flips only the status of the matching bill.
func (l *Ledger) MarkBillPaid(id string) UpdateResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.bills {
		if l.bills[i].ID == id {
			l.bills[i].Status = core.BillPaid
			l.version++
			return Updated
		}
	}
	return NotFound
}

// DeleteIncome removes the matching entry, reporting whether one existed.
func (l *Ledger) DeleteIncome(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.incomes {
		if l.incomes[i].ID == id {
			l.incomes = append(l.incomes[:i], l.incomes[i+1:]...)
			l.version++
			return true
		}
	}
	return false
}

func (l *Ledger) DeleteExpense(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.expenses {
		if l.expenses[i].ID == id {
			l.expenses = append(l.expenses[:i], l.expenses[i+1:]...)
			l.version++
			return true
		}
	}
	return false
}

func (l *Ledger) DeleteBill(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.bills {
		if l.bills[i].ID == id {
			l.bills = append(l.bills[:i], l.bills[i+1:]...)
			l.version++
			return true
		}
	}
	return false
}

func (l *Ledger) DeleteReimbursement(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.reimbursements {
		if l.reimbursements[i].ID == id {
			l.reimbursements = append(l.reimbursements[:i], l.reimbursements[i+1:]...)
			l.version++
			return true
		}
	}
	return false
}

func (l *Ledger) DeleteSaving(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.savings {
		if l.savings[i].ID == id {
			l.savings = append(l.savings[:i], l.savings[i+1:]...)
			l.version++
			return true
		}
	}
	return false
}

func (l *Ledger) ClearIncomes() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.incomes = nil
	l.version++
}

func (l *Ledger) ClearExpenses() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.expenses = nil
	l.version++
}

func (l *Ledger) ClearBills() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bills = nil
	l.version++
}

func (l *Ledger) ClearReimbursements() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reimbursements = nil
	l.version++
}

func (l *Ledger) ClearSavings() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.savings = nil
	l.version++
}

// Transactions recomputes the unified history from incomes, expenses and
// bills on every call. It always equals a fresh projection of the source
// collections; there is no stored copy to drift.
func (l *Ledger) Transactions() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return core.BuildTransactions(l.incomes, l.expenses, l.bills)
}

// Snapshot returns copies of the five collections for read-side use.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{
		Incomes:        append([]core.Income(nil), l.incomes...),
		Expenses:       append([]core.Expense(nil), l.expenses...),
		Bills:          append([]core.Bill(nil), l.bills...),
		Reimbursements: append([]core.Reimbursement(nil), l.reimbursements...),
		Savings:        append([]core.Saving(nil), l.savings...),
	}
}
