package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"

	"foyer/internal/core"
)

// The ledger is volatile: only the credential layer persists across
// restarts, so every process starts from this fixed dataset.
func builtinSeed() Snapshot {
	return Snapshot{
		Incomes: []core.Income{
			{Member: "Jean", Source: "Salaire", Amount: core.Money{Cents: 350000}, Date: core.NewDate(2024, 2, 1), Category: "Emploi"},
			{Member: "Marie", Source: "Salaire", Amount: core.Money{Cents: 320000}, Date: core.NewDate(2024, 2, 1), Category: "Emploi"},
			{Member: "Jean", Source: "Freelance", Amount: core.Money{Cents: 80000}, Date: core.NewDate(2024, 2, 10), Category: "Autre revenu"},
		},
		Expenses: []core.Expense{
			{Member: "Famille", Description: "Épicerie", Amount: core.Money{Cents: 25000}, Date: core.NewDate(2024, 2, 3), Category: "Alimentation"},
			{Member: "Jean", Description: "Essence", Amount: core.Money{Cents: 6000}, Date: core.NewDate(2024, 2, 5), Category: "Transport"},
			{Member: "Marie", Description: "Vêtements", Amount: core.Money{Cents: 12000}, Date: core.NewDate(2024, 2, 8), Category: "Shopping"},
		},
		Bills: []core.Bill{
			{Name: "Électricité", Amount: core.Money{Cents: 18000}, DueDate: core.NewDate(2024, 2, 15), Status: core.BillPaid, AssignedTo: "Jean"},
			{Name: "Internet", Amount: core.Money{Cents: 5000}, DueDate: core.NewDate(2024, 2, 15), Status: core.BillPending, AssignedTo: "Jean"},
			{Name: "Assurance habitation", Amount: core.Money{Cents: 12000}, DueDate: core.NewDate(2024, 2, 20), Status: core.BillPaid, AssignedTo: "Marie"},
		},
		Reimbursements: []core.Reimbursement{
			{From: "Jean", To: "Marie", Amount: core.Money{Cents: 15000}, Reason: "Essence partagée", Date: core.NewDate(2024, 2, 5), Status: core.ReimbursementValidated},
			{From: "Marie", To: "Jean", Amount: core.Money{Cents: 7500}, Reason: "Épicerie", Date: core.NewDate(2024, 2, 6), Status: core.ReimbursementPending},
		},
		Savings: []core.Saving{
			{Goal: "Vacances", TargetAmount: core.Money{Cents: 500000}, CurrentAmount: core.Money{Cents: 120000}, Deadline: core.NewDate(2024, 6, 30)},
			{Goal: "Rénovation cuisine", TargetAmount: core.Money{Cents: 1000000}, CurrentAmount: core.Money{Cents: 350000}, Deadline: core.NewDate(2024, 12, 31)},
			{Goal: "Fonds d'urgence", TargetAmount: core.Money{Cents: 800000}, CurrentAmount: core.Money{Cents: 560000}, Deadline: core.NewDate(2024, 12, 31)},
		},
	}
}

// NewSeeded returns a ledger populated with the built-in dataset.
func NewSeeded() *Ledger {
	l := New()
	l.seed(builtinSeed())
	return l
}

// NewFromFiles loads optional per-collection seed files from base
// (seed_incomes.json and friends). A missing or unreadable file falls back
// to the built-in dataset for that collection; invalid entries are skipped.
func NewFromFiles(base string) *Ledger {
	def := builtinSeed()
	s := Snapshot{
		Incomes:        readSeed(filepath.Join(base, "seed_incomes.json"), def.Incomes),
		Expenses:       readSeed(filepath.Join(base, "seed_expenses.json"), def.Expenses),
		Bills:          readSeed(filepath.Join(base, "seed_bills.json"), def.Bills),
		Reimbursements: readSeed(filepath.Join(base, "seed_reimbursements.json"), def.Reimbursements),
		Savings:        readSeed(filepath.Join(base, "seed_savings.json"), def.Savings),
	}
	l := New()
	l.seed(s)
	return l
}

func (l *Ledger) seed(s Snapshot) {
	for _, in := range s.Incomes {
		l.AddIncome(in)
	}
	for _, in := range s.Expenses {
		l.AddExpense(in)
	}
	for _, in := range s.Bills {
		l.AddBill(in)
	}
	for _, in := range s.Reimbursements {
		l.AddReimbursement(in)
	}
	for _, in := range s.Savings {
		l.AddSaving(in)
	}
}

type validator interface {
	Validate() error
}

func readSeed[T validator](path string, fallback []T) []T {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fallback
	}
	var entries []T
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fallback
	}
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if e.Validate() != nil {
			continue
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
