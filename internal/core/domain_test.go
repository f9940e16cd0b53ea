package core

import (
	"errors"
	"testing"
)

func validIncome() Income {
	return Income{
		Member:   "Jean",
		Source:   "Salaire",
		Amount:   Money{Cents: 350000},
		Date:     NewDate(2024, 2, 1),
		Category: "Emploi",
	}
}

func TestIncomeValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Income)
		wantErr error
	}{
		{name: "valid", mutate: func(i *Income) {}},
		{name: "blank member", mutate: func(i *Income) { i.Member = "  " }, wantErr: ErrEmptyField},
		{name: "blank source", mutate: func(i *Income) { i.Source = "" }, wantErr: ErrEmptyField},
		{name: "blank category", mutate: func(i *Income) { i.Category = "" }, wantErr: ErrEmptyField},
		{name: "zero amount", mutate: func(i *Income) { i.Amount = Money{} }, wantErr: ErrInvalidAmount},
		{name: "negative amount", mutate: func(i *Income) { i.Amount.Cents = -1 }, wantErr: ErrInvalidAmount},
		{name: "zero date", mutate: func(i *Income) { i.Date = Date{} }, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validIncome()
			tt.mutate(&in)
			err := in.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBillValidate(t *testing.T) {
	bill := Bill{
		Name:       "Électricité",
		Amount:     Money{Cents: 18000},
		DueDate:    NewDate(2024, 2, 5),
		Status:     BillPending,
		AssignedTo: "Jean",
	}
	if err := bill.Validate(); err != nil {
		t.Fatalf("valid bill rejected: %v", err)
	}

	bad := bill
	bad.Status = "late"
	if err := bad.Validate(); err == nil {
		t.Error("unknown status accepted")
	}

	bad = bill
	bad.AssignedTo = ""
	if !errors.Is(bad.Validate(), ErrEmptyField) {
		t.Error("blank assignee accepted")
	}
}

func TestReimbursementValidate(t *testing.T) {
	r := Reimbursement{
		From:   "Jean",
		To:     "Marie",
		Amount: Money{Cents: 4500},
		Reason: "Courses",
		Date:   NewDate(2024, 2, 10),
		Status: ReimbursementPending,
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("valid reimbursement rejected: %v", err)
	}

	bad := r
	bad.Status = "done"
	if err := bad.Validate(); err == nil {
		t.Error("unknown status accepted")
	}
}

func TestSavingValidate(t *testing.T) {
	s := Saving{
		Goal:          "Vacances",
		TargetAmount:  Money{Cents: 500000},
		CurrentAmount: Money{Cents: 0},
		Deadline:      NewDate(2024, 12, 31),
	}
	// A goal can start from zero.
	if err := s.Validate(); err != nil {
		t.Fatalf("zero current amount rejected: %v", err)
	}

	bad := s
	bad.CurrentAmount.Cents = -1
	if !errors.Is(bad.Validate(), ErrInvalidAmount) {
		t.Error("negative current amount accepted")
	}

	bad = s
	bad.TargetAmount = Money{}
	if !errors.Is(bad.Validate(), ErrInvalidAmount) {
		t.Error("zero target accepted")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2024-02-01" {
		t.Errorf("String() = %q, want 2024-02-01", d.String())
	}

	for _, input := range []string{"", "02/01/2024", "2024-13-01", "yesterday"} {
		if _, err := ParseDate(input); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", input, err)
		}
	}
}

func TestGoalPercentage(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		target  int64
		want    int
	}{
		{name: "quarter", current: 25000, target: 100000, want: 25},
		{name: "complete", current: 100000, target: 100000, want: 100},
		{name: "over target", current: 150000, target: 100000, want: 150},
		{name: "rounds half up", current: 150, target: 10000, want: 2},
		{name: "rounds down below half", current: 149, target: 10000, want: 1},
		{name: "zero current", current: 0, target: 100000, want: 0},
		{name: "zero target", current: 5000, target: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GoalPercentage(Money{Cents: tt.current}, Money{Cents: tt.target})
			if got != tt.want {
				t.Errorf("GoalPercentage(%d, %d) = %d, want %d", tt.current, tt.target, got, tt.want)
			}
		})
	}
}
