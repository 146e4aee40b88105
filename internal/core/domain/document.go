package domain

import (
	"encoding/json"
	"fmt"
)

// Document is a stored record inside a named collection.
type Document struct {
	ID     string          `json:"id"`
	Seq    int64           `json:"seq"`    // Insertion sequence assigned by the store
	Fields json.RawMessage `json:"fields"` // Arbitrary JSON object
}

// Decode unmarshals the document fields into v.
func (d Document) Decode(v any) error {
	if len(d.Fields) == 0 {
		return fmt.Errorf("document %s has no fields", d.ID)
	}
	if err := json.Unmarshal(d.Fields, v); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", d.ID, err)
	}
	return nil
}

// OrderBy is an ordering hint passed to ListDocuments. Stores may ignore it.
type OrderBy struct {
	Field      string
	Descending bool
}

// Collection paths used by the ledger.
const (
	CollectionProjects   = "projects"
	CollectionCategories = "categories"
	CollectionAccounts   = "accounts"
	CollectionUsers      = "users"
)

// TransactionsCollection returns the sub-collection path holding a project's transactions.
func TransactionsCollection(projectID string) string {
	return CollectionProjects + "/" + projectID + "/transactions"
}
