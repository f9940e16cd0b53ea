package core

import "sort"

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
	TransactionBill    TransactionType = "bill"
)

// BillCategory is the fixed category attached to bill rows in the unified
// transaction history.
const BillCategory = "Factures"

type (
	TransactionType string

	// Transaction is a read-only row of the unified history. It is derived
	// from incomes, expenses and bills and never stored or mutated directly.
	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Description string          `json:"description"`
		Amount      Money           `json:"amount"`
		Date        Date            `json:"date"`
		Category    string          `json:"category"`
	}

	// CategoryAmount is an amount aggregated under a single label.
	CategoryAmount struct {
		Name   string `json:"name"`
		Amount Money  `json:"amount"`
	}

	Totals struct {
		Income   Money `json:"income"`
		Expenses Money `json:"expenses"`
		Bills    Money `json:"bills"`
		Savings  Money `json:"savings"`
		Balance  Money `json:"balance"`
	}

	BillStatusCounts struct {
		Paid    int `json:"paid"`
		Pending int `json:"pending"`
		Overdue int `json:"overdue"`
	}
)

// ComputeTotals sums each collection in a single pass. The savings figure is
// the sum of current amounts and is not netted into the balance.
func ComputeTotals(incomes []Income, expenses []Expense, bills []Bill, savings []Saving) Totals {
	var t Totals
	for _, i := range incomes {
		t.Income.Cents += i.Amount.Cents
	}
	for _, e := range expenses {
		t.Expenses.Cents += e.Amount.Cents
	}
	for _, b := range bills {
		t.Bills.Cents += b.Amount.Cents
	}
	for _, s := range savings {
		t.Savings.Cents += s.CurrentAmount.Cents
	}
	t.Balance.Cents = t.Income.Cents - t.Expenses.Cents - t.Bills.Cents
	return t
}

// ExpensesByCategory sums expense amounts per category, ordered by the first
// occurrence of each category.
func ExpensesByCategory(expenses []Expense) []CategoryAmount {
	return sumByLabel(len(expenses), func(i int) (string, int64) {
		return expenses[i].Category, expenses[i].Amount.Cents
	})
}

// IncomeBySource sums income amounts per source, ordered by the first
// occurrence of each source.
func IncomeBySource(incomes []Income) []CategoryAmount {
	return sumByLabel(len(incomes), func(i int) (string, int64) {
		return incomes[i].Source, incomes[i].Amount.Cents
	})
}

func sumByLabel(n int, at func(int) (string, int64)) []CategoryAmount {
	index := make(map[string]int, n)
	out := make([]CategoryAmount, 0, n)
	for i := 0; i < n; i++ {
		label, cents := at(i)
		if pos, ok := index[label]; ok {
			out[pos].Amount.Cents += cents
			continue
		}
		index[label] = len(out)
		out = append(out, CategoryAmount{Name: label, Amount: Money{Cents: cents}})
	}
	return out
}

// BillsByStatus counts bills per status.
func BillsByStatus(bills []Bill) BillStatusCounts {
	var c BillStatusCounts
	for _, b := range bills {
		switch b.Status {
		case BillPaid:
			c.Paid++
		case BillPending:
			c.Pending++
		case BillOverdue:
			c.Overdue++
		}
	}
	return c
}

// BuildTransactions projects incomes, expenses and bills into the unified
// history: incomes contribute positive amounts, expenses and bills negative
// ones. Reimbursements and savings are deliberately excluded, matching the
// behavior the history view has always had. Rows are sorted by date
// descending; same-date rows keep insertion order.
func BuildTransactions(incomes []Income, expenses []Expense, bills []Bill) []Transaction {
	out := make([]Transaction, 0, len(incomes)+len(expenses)+len(bills))
	for _, i := range incomes {
		out = append(out, Transaction{
			ID:          "inc-" + i.ID,
			Type:        TransactionIncome,
			Description: i.Source + " - " + i.Member,
			Amount:      i.Amount,
			Date:        i.Date,
			Category:    i.Category,
		})
	}
	for _, e := range expenses {
		out = append(out, Transaction{
			ID:          "exp-" + e.ID,
			Type:        TransactionExpense,
			Description: e.Description + " - " + e.Member,
			Amount:      Money{Cents: -e.Amount.Cents},
			Date:        e.Date,
			Category:    e.Category,
		})
	}
	for _, b := range bills {
		out = append(out, Transaction{
			ID:          "bill-" + b.ID,
			Type:        TransactionBill,
			Description: b.Name,
			Amount:      Money{Cents: -b.Amount.Cents},
			Date:        b.DueDate,
			Category:    BillCategory,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}
