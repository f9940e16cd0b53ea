// Package services orchestrates ledger mutations with the event stream:
// every successful write is announced to AMQP so the export worker can keep
// the household history spreadsheet current.
package services

import (
	"context"
	"io"
	"log/slog"

	"foyer/internal/amqp"
	"foyer/internal/core"
	"foyer/internal/ledger"
	applog "foyer/internal/log"
)

// EventPublisher is the slice of the AMQP client the service needs.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error
}

// LedgerService wraps the ledger with fire-and-forget event publishing.
// A nil publisher disables events without changing any ledger semantics.
type LedgerService struct {
	ledger    *ledger.Ledger
	publisher EventPublisher
}

func NewLedgerService(l *ledger.Ledger, publisher EventPublisher) *LedgerService {
	return &LedgerService{ledger: l, publisher: publisher}
}

// Ledger exposes the underlying state owner for read paths.
func (s *LedgerService) Ledger() *ledger.Ledger {
	return s.ledger
}

func (s *LedgerService) publish(ctx context.Context, msg *amqp.LedgerEventMessage) {
	if s.publisher == nil {
		return
	}
	// The mutation already succeeded; a failed publish only delays the
	// export until the next event.
	if err := s.publisher.PublishLedgerEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			applog.FieldError, err,
			applog.FieldEntity, msg.Entity,
			applog.FieldAction, msg.Action,
			applog.FieldEntityID, msg.EntityID)
	}
}

func (s *LedgerService) AddIncome(ctx context.Context, in core.Income) core.Income {
	stored := s.ledger.AddIncome(in)
	msg := amqp.NewLedgerEventMessage("income", amqp.ActionCreated, stored.ID)
	msg.Description = stored.Source + " - " + stored.Member
	msg.AmountCents = stored.Amount.Cents
	msg.Date = stored.Date.String()
	msg.Category = stored.Category
	s.publish(ctx, msg)
	return stored
}

func (s *LedgerService) AddExpense(ctx context.Context, in core.Expense) core.Expense {
	stored := s.ledger.AddExpense(in)
	msg := amqp.NewLedgerEventMessage("expense", amqp.ActionCreated, stored.ID)
	msg.Description = stored.Description + " - " + stored.Member
	msg.AmountCents = -stored.Amount.Cents
	msg.Date = stored.Date.String()
	msg.Category = stored.Category
	s.publish(ctx, msg)
	return stored
}

func (s *LedgerService) AddBill(ctx context.Context, in core.Bill) core.Bill {
	stored := s.ledger.AddBill(in)
	msg := amqp.NewLedgerEventMessage("bill", amqp.ActionCreated, stored.ID)
	msg.Description = stored.Name
	msg.AmountCents = -stored.Amount.Cents
	msg.Date = stored.DueDate.String()
	msg.Category = core.BillCategory
	s.publish(ctx, msg)
	return stored
}

func (s *LedgerService) AddReimbursement(ctx context.Context, in core.Reimbursement) core.Reimbursement {
	stored := s.ledger.AddReimbursement(in)
	msg := amqp.NewLedgerEventMessage("reimbursement", amqp.ActionCreated, stored.ID)
	msg.Description = stored.Reason
	msg.AmountCents = stored.Amount.Cents
	msg.Date = stored.Date.String()
	s.publish(ctx, msg)
	return stored
}

func (s *LedgerService) AddSaving(ctx context.Context, in core.Saving) core.Saving {
	stored := s.ledger.AddSaving(in)
	msg := amqp.NewLedgerEventMessage("saving", amqp.ActionCreated, stored.ID)
	msg.Description = stored.Goal
	msg.AmountCents = stored.CurrentAmount.Cents
	msg.Date = stored.Deadline.String()
	s.publish(ctx, msg)
	return stored
}

func (s *LedgerService) UpdateIncome(ctx context.Context, id string, in core.Income) ledger.UpdateResult {
	res := s.ledger.UpdateIncome(id, in)
	if res == ledger.Updated {
		s.publish(ctx, amqp.NewLedgerEventMessage("income", amqp.ActionUpdated, id))
	}
	return res
}

func (s *LedgerService) UpdateExpense(ctx context.Context, id string, in core.Expense) ledger.UpdateResult {
	res := s.ledger.UpdateExpense(id, in)
	if res == ledger.Updated {
		s.publish(ctx, amqp.NewLedgerEventMessage("expense", amqp.ActionUpdated, id))
	}
	return res
}

func (s *LedgerService) UpdateBill(ctx context.Context, id string, in core.Bill) ledger.UpdateResult {
	res := s.ledger.UpdateBill(id, in)
	if res == ledger.Updated {
		s.publish(ctx, amqp.NewLedgerEventMessage("bill", amqp.ActionUpdated, id))
	}
	return res
}

func (s *LedgerService) UpdateReimbursement(ctx context.Context, id string, in core.Reimbursement) ledger.UpdateResult {
	res := s.ledger.UpdateReimbursement(id, in)
	if res == ledger.Updated {
		s.publish(ctx, amqp.NewLedgerEventMessage("reimbursement", amqp.ActionUpdated, id))
	}
	return res
}

func (s *LedgerService) UpdateSaving(ctx context.Context, id string, in core.Saving) ledger.UpdateResult {
	res := s.ledger.UpdateSaving(id, in)
	if res == ledger.Updated {
		s.publish(ctx, amqp.NewLedgerEventMessage("saving", amqp.ActionUpdated, id))
	}
	return res
}

func (s *LedgerService) MarkBillPaid(ctx context.Context, id string) ledger.UpdateResult {
	res := s.ledger.MarkBillPaid(id)
	if res == ledger.Updated {
		s.publish(ctx, amqp.NewLedgerEventMessage("bill", amqp.ActionPaid, id))
	}
	return res
}

func (s *LedgerService) DeleteIncome(ctx context.Context, id string) bool {
	if !s.ledger.DeleteIncome(id) {
		return false
	}
	s.publish(ctx, amqp.NewLedgerEventMessage("income", amqp.ActionDeleted, id))
	return true
}

func (s *LedgerService) DeleteExpense(ctx context.Context, id string) bool {
	if !s.ledger.DeleteExpense(id) {
		return false
	}
	s.publish(ctx, amqp.NewLedgerEventMessage("expense", amqp.ActionDeleted, id))
	return true
}

func (s *LedgerService) DeleteBill(ctx context.Context, id string) bool {
	if !s.ledger.DeleteBill(id) {
		return false
	}
	s.publish(ctx, amqp.NewLedgerEventMessage("bill", amqp.ActionDeleted, id))
	return true
}

func (s *LedgerService) DeleteReimbursement(ctx context.Context, id string) bool {
	if !s.ledger.DeleteReimbursement(id) {
		return false
	}
	s.publish(ctx, amqp.NewLedgerEventMessage("reimbursement", amqp.ActionDeleted, id))
	return true
}

func (s *LedgerService) DeleteSaving(ctx context.Context, id string) bool {
	if !s.ledger.DeleteSaving(id) {
		return false
	}
	s.publish(ctx, amqp.NewLedgerEventMessage("saving", amqp.ActionDeleted, id))
	return true
}

func (s *LedgerService) ClearIncomes(ctx context.Context) {
	s.ledger.ClearIncomes()
	s.publish(ctx, amqp.NewLedgerEventMessage("income", amqp.ActionCleared, ""))
}

func (s *LedgerService) ClearExpenses(ctx context.Context) {
	s.ledger.ClearExpenses()
	s.publish(ctx, amqp.NewLedgerEventMessage("expense", amqp.ActionCleared, ""))
}

func (s *LedgerService) ClearBills(ctx context.Context) {
	s.ledger.ClearBills()
	s.publish(ctx, amqp.NewLedgerEventMessage("bill", amqp.ActionCleared, ""))
}

func (s *LedgerService) ClearReimbursements(ctx context.Context) {
	s.ledger.ClearReimbursements()
	s.publish(ctx, amqp.NewLedgerEventMessage("reimbursement", amqp.ActionCleared, ""))
}

func (s *LedgerService) ClearSavings(ctx context.Context) {
	s.ledger.ClearSavings()
	s.publish(ctx, amqp.NewLedgerEventMessage("saving", amqp.ActionCleared, ""))
}

// Close releases the publisher when it owns a connection.
func (s *LedgerService) Close() error {
	if closer, ok := s.publisher.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
