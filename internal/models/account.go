package models

// Account is the persisted shape of an account document.
type Account struct {
	Name string `json:"name"`
}
