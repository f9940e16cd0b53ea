// Package worker turns ledger events into spreadsheet history rows.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"foyer/internal/amqp"
	applog "foyer/internal/log"
)

// HistoryExporter is the slice of the sheets client the worker needs.
type HistoryExporter interface {
	AppendHistoryRow(ctx context.Context, date, entity, description string, amountCents int64, category string) error
}

type ExportWorker struct {
	exporter HistoryExporter
	exported atomic.Int64
	skipped  atomic.Int64
}

func NewExportWorker(exporter HistoryExporter) *ExportWorker {
	return &ExportWorker{exporter: exporter}
}

// HandleLedgerEvent exports created income, expense and bill rows — the
// three entity kinds that make up the unified history. Everything else is
// acknowledged and skipped: updates and deletes are not replayed into the
// archive, and reimbursements and savings have never been part of it.
func (w *ExportWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	if msg.Action != amqp.ActionCreated || !exportedEntity(msg.Entity) {
		w.skipped.Add(1)
		slog.DebugContext(ctx, "Skipping ledger event",
			applog.FieldEntity, msg.Entity,
			applog.FieldAction, msg.Action,
			applog.FieldEntityID, msg.EntityID)
		return nil
	}

	err := w.exporter.AppendHistoryRow(ctx, msg.Date, msg.Entity, msg.Description, msg.AmountCents, msg.Category)
	if err != nil {
		return fmt.Errorf("export %s %s: %w", msg.Entity, msg.EntityID, err)
	}

	w.exported.Add(1)
	return nil
}

// Exported returns the number of rows appended since startup.
func (w *ExportWorker) Exported() int64 {
	return w.exported.Load()
}

// Skipped returns the number of events acknowledged without export.
func (w *ExportWorker) Skipped() int64 {
	return w.skipped.Load()
}

func exportedEntity(entity string) bool {
	switch entity {
	case "income", "expense", "bill":
		return true
	default:
		return false
	}
}
