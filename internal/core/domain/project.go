package domain

import "time"

// Project is a named ledger container owned by a user.
type Project struct {
	ProjectID   string    `json:"projectID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	OwnerID     string    `json:"ownerID"` // UserID of the creator
}
