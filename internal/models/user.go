package models

// User is the persisted shape of a user document.
type User struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	CreatedAt    string `json:"createdAt"` // DateLayout, UTC
}
