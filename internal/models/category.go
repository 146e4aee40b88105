package models

// Category is the persisted shape of a category document.
type Category struct {
	Name string  `json:"name"`
	Icon *string `json:"icon"` // null when not set
}
