package core

import (
	"errors"
	"strings"
	"time"
)

const (
	BillPaid    BillStatus = "paid"
	BillPending BillStatus = "pending"
	BillOverdue BillStatus = "overdue"
)

const (
	ReimbursementPending   ReimbursementStatus = "pending"
	ReimbursementValidated ReimbursementStatus = "validated"
	ReimbursementRejected  ReimbursementStatus = "rejected"
)

type (
	BillStatus          string
	ReimbursementStatus string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Income is money coming into the household, attributed to a member.
	Income struct {
		ID       string `json:"id"`
		Member   string `json:"member"`
		Source   string `json:"source"`
		Amount   Money  `json:"amount"`
		Date     Date   `json:"date"`
		Category string `json:"category"`
	}

	Expense struct {
		ID          string `json:"id"`
		Member      string `json:"member"`
		Description string `json:"description"`
		Amount      Money  `json:"amount"`
		Date        Date   `json:"date"`
		Category    string `json:"category"`
	}

	// Bill is a recurring household charge assigned to one member.
	Bill struct {
		ID         string     `json:"id"`
		Name       string     `json:"name"`
		Amount     Money      `json:"amount"`
		DueDate    Date       `json:"due_date"`
		Status     BillStatus `json:"status"`
		AssignedTo string     `json:"assigned_to"`
	}

	// Reimbursement is money owed between two members.
	Reimbursement struct {
		ID     string              `json:"id"`
		From   string              `json:"from"`
		To     string              `json:"to"`
		Amount Money               `json:"amount"`
		Reason string              `json:"reason"`
		Date   Date                `json:"date"`
		Status ReimbursementStatus `json:"status"`
	}

	// Saving tracks progress toward a goal. Percentage is stored, not
	// live-computed: it reflects the amounts at the moment of last write.
	Saving struct {
		ID            string `json:"id"`
		Goal          string `json:"goal"`
		TargetAmount  Money  `json:"target_amount"`
		CurrentAmount Money  `json:"current_amount"`
		Deadline      Date   `json:"deadline"`
		Percentage    int    `json:"percentage"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyField    = errors.New("missing required field")
)

func (s BillStatus) IsValid() bool {
	switch s {
	case BillPaid, BillPending, BillOverdue:
		return true
	default:
		return false
	}
}

func (s ReimbursementStatus) IsValid() bool {
	switch s {
	case ReimbursementPending, ReimbursementValidated, ReimbursementRejected:
		return true
	default:
		return false
	}
}

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	parsed, err := ParseDate(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func notBlank(fields ...string) error {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return ErrEmptyField
		}
	}
	return nil
}

func (i Income) Validate() error {
	if err := notBlank(i.Member, i.Source, i.Category); err != nil {
		return err
	}
	if err := i.Amount.Validate(); err != nil {
		return err
	}
	return i.Date.Validate()
}

func (e Expense) Validate() error {
	if err := notBlank(e.Member, e.Description, e.Category); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	return e.Date.Validate()
}

func (b Bill) Validate() error {
	if err := notBlank(b.Name, b.AssignedTo); err != nil {
		return err
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if !b.Status.IsValid() {
		return errors.New("invalid bill status")
	}
	return b.DueDate.Validate()
}

func (r Reimbursement) Validate() error {
	if err := notBlank(r.From, r.To, r.Reason); err != nil {
		return err
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if !r.Status.IsValid() {
		return errors.New("invalid reimbursement status")
	}
	return r.Date.Validate()
}

func (s Saving) Validate() error {
	if err := notBlank(s.Goal); err != nil {
		return err
	}
	if err := s.TargetAmount.Validate(); err != nil {
		return err
	}
	// Current amount may be zero but never negative.
	if s.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	return s.Deadline.Validate()
}

// GoalPercentage returns round(100 * current / target), the figure stored on
// a Saving at every write. A non-positive target yields 0.
func GoalPercentage(current, target Money) int {
	if target.Cents <= 0 {
		return 0
	}
	return int((current.Cents*100 + target.Cents/2) / target.Cents)
}
