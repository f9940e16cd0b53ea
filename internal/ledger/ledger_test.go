package ledger

import (
	"testing"

	"foyer/internal/core"
)

func testIncome(source string) core.Income {
	return core.Income{
		Member:   "Jean",
		Source:   source,
		Amount:   core.Money{Cents: 100000},
		Date:     core.NewDate(2024, 2, 1),
		Category: "Emploi",
	}
}

func testSaving(goal string, current, target int64) core.Saving {
	return core.Saving{
		Goal:          goal,
		TargetAmount:  core.Money{Cents: target},
		CurrentAmount: core.Money{Cents: current},
		Deadline:      core.NewDate(2024, 12, 31),
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	l := New()
	seen := map[string]bool{}

	a := l.AddIncome(testIncome("A"))
	b := l.AddExpense(core.Expense{Member: "Marie", Description: "Essence", Amount: core.Money{Cents: 6000}, Date: core.NewDate(2024, 2, 5), Category: "Transport"})
	c := l.AddSaving(testSaving("Vacances", 0, 100000))

	for _, id := range []string{a.ID, b.ID, c.ID} {
		if id == "" {
			t.Fatal("empty id assigned")
		}
		if seen[id] {
			t.Fatalf("id %q assigned twice", id)
		}
		seen[id] = true
	}
}

func TestIDsNeverReusedAfterDelete(t *testing.T) {
	l := New()
	first := l.AddIncome(testIncome("A"))
	if !l.DeleteIncome(first.ID) {
		t.Fatal("delete failed")
	}
	second := l.AddIncome(testIncome("B"))
	if second.ID == first.ID {
		t.Errorf("id %q reused after delete", first.ID)
	}
}

func TestUpdateIncome(t *testing.T) {
	l := New()
	stored := l.AddIncome(testIncome("Salaire"))

	replacement := testIncome("Freelance")
	replacement.Amount = core.Money{Cents: 80000}
	if res := l.UpdateIncome(stored.ID, replacement); res != Updated {
		t.Fatalf("UpdateIncome = %v, want Updated", res)
	}

	got := l.Snapshot().Incomes[0]
	if got.ID != stored.ID {
		t.Errorf("id changed on update: %q -> %q", stored.ID, got.ID)
	}
	if got.Source != "Freelance" || got.Amount.Cents != 80000 {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	l := New()
	l.AddIncome(testIncome("Salaire"))
	before := l.Snapshot()
	v := l.Version()

	if res := l.UpdateIncome("999", testIncome("X")); res != NotFound {
		t.Fatalf("UpdateIncome = %v, want NotFound", res)
	}
	if l.Version() != v {
		t.Error("version bumped by a no-op update")
	}
	after := l.Snapshot()
	if len(after.Incomes) != len(before.Incomes) || after.Incomes[0] != before.Incomes[0] {
		t.Error("no-op update changed state")
	}
}

func TestDeleteMissingID(t *testing.T) {
	l := New()
	if l.DeleteExpense("42") {
		t.Error("delete of missing id reported true")
	}
}

func TestSavingPercentageRecomputedOnWrite(t *testing.T) {
	l := New()
	stored := l.AddSaving(testSaving("Voyage", 25000, 100000))
	if stored.Percentage != 25 {
		t.Fatalf("stored percentage = %d, want 25", stored.Percentage)
	}

	replacement := testSaving("Voyage", 50000, 100000)
	if res := l.UpdateSaving(stored.ID, replacement); res != Updated {
		t.Fatalf("UpdateSaving failed")
	}
	got := l.Snapshot().Savings[0]
	if got.Percentage != 50 {
		t.Errorf("percentage after update = %d, want 50", got.Percentage)
	}
}

func TestMarkBillPaid(t *testing.T) {
	l := New()
	bill := l.AddBill(core.Bill{
		Name:       "Internet",
		Amount:     core.Money{Cents: 5000},
		DueDate:    core.NewDate(2024, 2, 15),
		Status:     core.BillPending,
		AssignedTo: "Jean",
	})

	if res := l.MarkBillPaid(bill.ID); res != Updated {
		t.Fatalf("MarkBillPaid = %v, want Updated", res)
	}
	got := l.Snapshot().Bills[0]
	if got.Status != core.BillPaid {
		t.Errorf("status = %q, want paid", got.Status)
	}
	if got.Name != bill.Name || got.Amount != bill.Amount {
		t.Error("MarkBillPaid touched more than the status")
	}

	if res := l.MarkBillPaid("999"); res != NotFound {
		t.Errorf("MarkBillPaid missing id = %v, want NotFound", res)
	}
}

func TestClear(t *testing.T) {
	l := NewSeeded()
	l.ClearExpenses()

	snap := l.Snapshot()
	if len(snap.Expenses) != 0 {
		t.Errorf("expenses after clear = %d, want 0", len(snap.Expenses))
	}
	// Other collections are untouched.
	if len(snap.Incomes) == 0 || len(snap.Bills) == 0 {
		t.Error("clear leaked into other collections")
	}
}

func TestVersionBumpsOnEveryMutation(t *testing.T) {
	l := New()
	v := l.Version()

	in := l.AddIncome(testIncome("A"))
	if l.Version() <= v {
		t.Error("version not bumped by add")
	}
	v = l.Version()

	l.UpdateIncome(in.ID, testIncome("B"))
	if l.Version() <= v {
		t.Error("version not bumped by update")
	}
	v = l.Version()

	l.ClearIncomes()
	if l.Version() <= v {
		t.Error("version not bumped by clear")
	}
}

func TestTransactionsExcludeReimbursementsAndSavings(t *testing.T) {
	l := New()
	l.AddIncome(testIncome("Salaire"))
	l.AddReimbursement(core.Reimbursement{
		From: "Jean", To: "Marie",
		Amount: core.Money{Cents: 7500},
		Reason: "Épicerie",
		Date:   core.NewDate(2024, 2, 6),
		Status: core.ReimbursementPending,
	})
	l.AddSaving(testSaving("Vacances", 120000, 500000))

	got := l.Transactions()
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 (income only)", len(got))
	}
	if got[0].Type != core.TransactionIncome {
		t.Errorf("type = %q, want income", got[0].Type)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	l := New()
	l.AddIncome(testIncome("Salaire"))

	snap := l.Snapshot()
	snap.Incomes[0].Source = "mutated"

	if l.Snapshot().Incomes[0].Source != "Salaire" {
		t.Error("snapshot mutation leaked into the ledger")
	}
}
