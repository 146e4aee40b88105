package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EventType names a ledger mutation.
type EventType string

const (
	TransactionAdded   EventType = "transaction.added"
	TransactionDeleted EventType = "transaction.deleted"
)

// LedgerEvent is published after a mutation has been confirmed by a refetch.
type LedgerEvent struct {
	Type          EventType       `json:"type"`
	ProjectID     string          `json:"projectId"`
	TransactionID string          `json:"transactionId"`
	UserID        string          `json:"userId,omitempty"`
	Balance       decimal.Decimal `json:"balance"` // Project balance after the mutation
	OccurredAt    time.Time       `json:"occurredAt"`
}

// NewLedgerEvent builds an event stamped with the current time.
func NewLedgerEvent(eventType EventType, projectID, transactionID, userID string, balance decimal.Decimal) *LedgerEvent {
	return &LedgerEvent{
		Type:          eventType,
		ProjectID:     projectID,
		TransactionID: transactionID,
		UserID:        userID,
		Balance:       balance,
		OccurredAt:    time.Now().UTC(),
	}
}

// ToJSON serialises the event for the wire.
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON parses an event received from the wire.
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal ledger event: %w", err)
	}
	if e.Type == "" || e.ProjectID == "" {
		return nil, fmt.Errorf("ledger event missing type or project id")
	}
	return &e, nil
}
