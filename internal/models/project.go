package models

// Project is the persisted shape of a project document.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"` // DateLayout, UTC
	UserID      string `json:"userId"`
}
