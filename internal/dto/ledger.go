package dto

import (
	"github.com/shopspring/decimal"
)

// LedgerResponse is the full view of one project's ledger.
// Errors holds a message per failed fetch (project, transactions, categories,
// accounts); the other parts are still populated.
type LedgerResponse struct {
	Project        *ProjectResponse      `json:"project"`
	Transactions   []TransactionResponse `json:"transactions"`
	Categories     []CategoryResponse    `json:"categories"`
	Accounts       []AccountResponse     `json:"accounts"`
	Balance        decimal.Decimal       `json:"balance"`
	BalanceDisplay string                `json:"balanceDisplay"`
	State          string                `json:"state"`
	Errors         map[string]string     `json:"errors,omitempty"`
}
