package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the user-facing kind of a ledger entry. It decides the
// sign of the stored amount at creation time.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
	Loan    TransactionType = "loan"   // Money lent out: a debit
	Return  TransactionType = "return" // Money received back: a credit
)

// Valid reports whether t is one of the four known types.
func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense, Loan, Return:
		return true
	}
	return false
}

// LinkedTransactionID is a weak reference to another transaction in the same
// project. It is never checked for existence and is left dangling when the
// target is deleted.
type LinkedTransactionID string

// Valid reports whether a link is present.
func (l LinkedTransactionID) Valid() bool {
	return l != ""
}

// String returns the referenced ID, empty when absent.
func (l LinkedTransactionID) String() string {
	return string(l)
}

// Ptr returns nil when the link is absent, for nullable persistence.
func (l LinkedTransactionID) Ptr() *string {
	if !l.Valid() {
		return nil
	}
	s := string(l)
	return &s
}

// Transaction is a single dated, signed monetary entry within a project.
// Transactions are immutable once created; they can only be deleted.
type Transaction struct {
	TransactionID       string              `json:"transactionID"`
	ProjectID           string              `json:"projectID"`
	Description         string              `json:"description"`
	Amount              decimal.Decimal     `json:"amount"`   // Signed, derived from Type at creation
	Category            string              `json:"category"` // Category name copied by value
	Account             string              `json:"account"`  // Account name copied by value
	Type                TransactionType     `json:"type"`
	Date                time.Time           `json:"date"` // Calendar date + capture time-of-day, UTC
	LinkedTransactionID LinkedTransactionID `json:"linkedTransactionID,omitempty"`
	Timestamp           time.Time           `json:"timestamp"` // Creation instant
	Seq                 int64               `json:"-"`         // Store insertion sequence
}

// OrderKey is the structured ordering key of a transaction: date first, then
// insertion sequence as the tie-break.
type OrderKey struct {
	Date time.Time
	Seq  int64
}

// OrderKey returns the transaction's ordering key.
func (t Transaction) OrderKey() OrderKey {
	return OrderKey{Date: t.Date, Seq: t.Seq}
}

// Before reports whether k sorts ahead of other in a ledger listing
// (newest date first, earlier insertion first among equal dates).
func (k OrderKey) Before(other OrderKey) bool {
	if !k.Date.Equal(other.Date) {
		return k.Date.After(other.Date)
	}
	return k.Seq < other.Seq
}
