package domain

// Category is a flat reference tag used to classify transactions.
type Category struct {
	CategoryID string  `json:"categoryID"`
	Name       string  `json:"name"`
	Icon       *string `json:"icon,omitempty"`
}
