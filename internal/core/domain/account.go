package domain

// Account is a flat reference tag naming where money moved (e.g. "Checking").
// Transactions copy the name, not the ID.
type Account struct {
	AccountID string `json:"accountID"`
	Name      string `json:"name"`
}
