package models

import "github.com/shopspring/decimal"

// DateLayout is the fixed-width UTC layout used for persisted timestamps so that
// lexical order in the store matches chronological order.
const DateLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Transaction is the persisted shape of a transaction document.
// Field names match the collection's existing documents.
type Transaction struct {
	Description         string          `json:"description"`
	Amount              decimal.Decimal `json:"amount"` // Signed; serialized as a decimal string
	Category            string          `json:"category"`
	Account             string          `json:"account"`
	Type                string          `json:"type"`
	Date                string          `json:"date"`                // DateLayout, UTC
	LinkedTransactionID *string         `json:"linkedTransactionId"` // null when absent
	Timestamp           string          `json:"timestamp"`           // DateLayout, UTC
}
