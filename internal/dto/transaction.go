package dto

import (
	"time"

	"github.com/SscSPs/project_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format accepted and displayed for transactions.
const DateLayout = "2006-01-02"

// AddTransactionRequest carries the user-entered fields of a new transaction.
// Amount is the non-negative magnitude; its sign is derived from Type.
type AddTransactionRequest struct {
	Description         string           `json:"description" binding:"required" validate:"required"`
	Amount              *decimal.Decimal `json:"amount" binding:"required" validate:"required"`
	Category            string           `json:"category" binding:"required" validate:"required"`
	Account             string           `json:"account" binding:"required" validate:"required"`
	Type                string           `json:"type" binding:"required,oneof=income expense loan return" validate:"required,oneof=income expense loan return"`
	Date                string           `json:"date" binding:"required" validate:"required,datetime=2006-01-02"` // YYYY-MM-DD
	LinkedTransactionID *string          `json:"linkedTransactionId"`                                             // Optional, never checked for existence
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID       string          `json:"transactionID"`
	Description         string          `json:"description"`
	Amount              decimal.Decimal `json:"amount"`
	Category            string          `json:"category"`
	Account             string          `json:"account"`
	Type                string          `json:"type"`
	Date                time.Time       `json:"date"`
	DisplayDate         string          `json:"displayDate"`
	LinkedTransactionID *string         `json:"linkedTransactionId"`
	Timestamp           time.Time       `json:"timestamp"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:       txn.TransactionID,
		Description:         txn.Description,
		Amount:              txn.Amount,
		Category:            txn.Category,
		Account:             txn.Account,
		Type:                string(txn.Type),
		Date:                txn.Date,
		DisplayDate:         txn.Date.UTC().Format(DateLayout),
		LinkedTransactionID: txn.LinkedTransactionID.Ptr(),
		Timestamp:           txn.Timestamp,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction, keeping its order.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(txn)
	}
	return res
}

// HighlightResponse lists the transaction IDs to highlight for a followed link.
type HighlightResponse struct {
	TargetID    string   `json:"targetID"`
	Highlighted []string `json:"highlighted"`
}

// CopyIDResponse carries a transaction ID for the clipboard.
type CopyIDResponse struct {
	TransactionID string `json:"transactionID"`
}
