package core

import "testing"

func sampleCollections() ([]Income, []Expense, []Bill, []Saving) {
	incomes := []Income{
		{ID: "1", Member: "Jean", Source: "Salaire", Amount: Money{Cents: 350000}, Date: NewDate(2024, 2, 1), Category: "Emploi"},
	}
	expenses := []Expense{
		{ID: "2", Member: "Marie", Description: "Épicerie", Amount: Money{Cents: 25000}, Date: NewDate(2024, 2, 10), Category: "Alimentation"},
	}
	bills := []Bill{
		{ID: "3", Name: "Électricité", Amount: Money{Cents: 18000}, DueDate: NewDate(2024, 2, 15), Status: BillPending, AssignedTo: "Jean"},
	}
	savings := []Saving{
		{ID: "4", Goal: "Vacances", TargetAmount: Money{Cents: 500000}, CurrentAmount: Money{Cents: 120000}, Deadline: NewDate(2024, 12, 31), Percentage: 24},
	}
	return incomes, expenses, bills, savings
}

func TestComputeTotals(t *testing.T) {
	incomes, expenses, bills, savings := sampleCollections()
	got := ComputeTotals(incomes, expenses, bills, savings)

	if got.Income.Cents != 350000 {
		t.Errorf("income = %d, want 350000", got.Income.Cents)
	}
	if got.Expenses.Cents != 25000 {
		t.Errorf("expenses = %d, want 25000", got.Expenses.Cents)
	}
	if got.Bills.Cents != 18000 {
		t.Errorf("bills = %d, want 18000", got.Bills.Cents)
	}
	// Savings are reported but never netted into the balance.
	if got.Savings.Cents != 120000 {
		t.Errorf("savings = %d, want 120000", got.Savings.Cents)
	}
	if got.Balance.Cents != 307000 {
		t.Errorf("balance = %d, want 307000", got.Balance.Cents)
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	got := ComputeTotals(nil, nil, nil, nil)
	if got.Balance.Cents != 0 || got.Income.Cents != 0 {
		t.Errorf("empty totals = %+v, want zeroes", got)
	}
}

func TestBuildTransactions(t *testing.T) {
	incomes, expenses, bills, _ := sampleCollections()
	got := BuildTransactions(incomes, expenses, bills)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	// Sorted by date descending: bill (02-15), expense (02-10), income (02-01).
	want := []struct {
		id          string
		typ         TransactionType
		description string
		cents       int64
		category    string
	}{
		{"bill-3", TransactionBill, "Électricité", -18000, BillCategory},
		{"exp-2", TransactionExpense, "Épicerie - Marie", -25000, "Alimentation"},
		{"inc-1", TransactionIncome, "Salaire - Jean", 350000, "Emploi"},
	}
	for i, w := range want {
		tx := got[i]
		if tx.ID != w.id || tx.Type != w.typ || tx.Description != w.description ||
			tx.Amount.Cents != w.cents || tx.Category != w.category {
			t.Errorf("row %d = %+v, want %+v", i, tx, w)
		}
	}
}

func TestBuildTransactionsStableOnEqualDates(t *testing.T) {
	date := NewDate(2024, 3, 1)
	incomes := []Income{
		{ID: "1", Member: "Jean", Source: "A", Amount: Money{Cents: 100}, Date: date, Category: "x"},
		{ID: "2", Member: "Jean", Source: "B", Amount: Money{Cents: 100}, Date: date, Category: "x"},
	}
	got := BuildTransactions(incomes, nil, nil)
	if got[0].ID != "inc-1" || got[1].ID != "inc-2" {
		t.Errorf("same-date rows reordered: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestExpensesByCategory(t *testing.T) {
	expenses := []Expense{
		{Category: "Alimentation", Amount: Money{Cents: 1000}},
		{Category: "Transport", Amount: Money{Cents: 500}},
		{Category: "Alimentation", Amount: Money{Cents: 2000}},
	}
	got := ExpensesByCategory(expenses)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "Alimentation" || got[0].Amount.Cents != 3000 {
		t.Errorf("first = %+v, want Alimentation 3000", got[0])
	}
	if got[1].Name != "Transport" || got[1].Amount.Cents != 500 {
		t.Errorf("second = %+v, want Transport 500", got[1])
	}
}

func TestIncomeBySource(t *testing.T) {
	incomes := []Income{
		{Source: "Salaire", Amount: Money{Cents: 350000}},
		{Source: "Freelance", Amount: Money{Cents: 80000}},
		{Source: "Salaire", Amount: Money{Cents: 320000}},
	}
	got := IncomeBySource(incomes)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "Salaire" || got[0].Amount.Cents != 670000 {
		t.Errorf("first = %+v, want Salaire 670000", got[0])
	}
}

func TestBillsByStatus(t *testing.T) {
	bills := []Bill{
		{Status: BillPaid},
		{Status: BillPending},
		{Status: BillPending},
		{Status: BillOverdue},
	}
	got := BillsByStatus(bills)
	if got.Paid != 1 || got.Pending != 2 || got.Overdue != 1 {
		t.Errorf("counts = %+v, want 1/2/1", got)
	}
}
