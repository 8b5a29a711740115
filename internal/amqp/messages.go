package amqp

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger event types, one per committed mutation.
const (
	EventAccountCreated     = "account.created"
	EventAccountDeleted     = "account.deleted"
	EventTransactionCreated = "transaction.created"
	EventTransactionDeleted = "transaction.deleted"
	EventInvestmentCreated  = "investment.created"
	EventInvestmentDeleted  = "investment.deleted"
	EventGoalCreated        = "goal.created"
	EventGoalUpdated        = "goal.updated"
	EventGoalCompleted      = "goal.completed"
	EventGoalDeleted        = "goal.deleted"
)

// LedgerEvent notifies consumers that the ledger changed. It carries only
// identifiers and the monetary delta; consumers read the rest from the API.
type LedgerEvent struct {
	Type      string          `json:"type"`
	EntityID  int64           `json:"entity_id"`
	AccountID int64           `json:"account_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewLedgerEvent creates an event stamped with the current time.
func NewLedgerEvent(eventType string, entityID, accountID int64, amount decimal.Decimal) *LedgerEvent {
	return &LedgerEvent{
		Type:      eventType,
		EntityID:  entityID,
		AccountID: accountID,
		Amount:    amount,
		Timestamp: time.Now(),
	}
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
