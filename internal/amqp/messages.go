package amqp

import (
	"encoding/json"
	"time"
)

// Event actions carried on the ledger event stream.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionCleared = "cleared"
	ActionPaid    = "paid"
)

// LedgerEventMessage describes one ledger mutation. It carries the full row
// needed by downstream consumers, since the ledger itself is in-memory and
// cannot be queried from another process.
type LedgerEventMessage struct {
	Entity      string    `json:"entity"`
	Action      string    `json:"action"`
	EntityID    string    `json:"entity_id"`
	Description string    `json:"description,omitempty"`
	AmountCents int64     `json:"amount_cents,omitempty"`
	Date        string    `json:"date,omitempty"`
	Category    string    `json:"category,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewLedgerEventMessage(entity, action, entityID string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Entity:    entity,
		Action:    action,
		EntityID:  entityID,
		Timestamp: time.Now(),
	}
}

func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
