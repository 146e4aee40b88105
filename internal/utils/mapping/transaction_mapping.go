package mapping

import (
	"fmt"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/core/domain"
	"github.com/SscSPs/project_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to its persisted document shape.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		Description:         d.Description,
		Amount:              d.Amount,
		Category:            d.Category,
		Account:             d.Account,
		Type:                string(d.Type),
		Date:                FormatTime(d.Date),
		LinkedTransactionID: d.LinkedTransactionID.Ptr(),
		Timestamp:           FormatTime(d.Timestamp),
	}
}

// ToDomainTransaction decodes a transaction document. Documents with an
// unexpected shape yield apperrors.ErrRead.
func ToDomainTransaction(projectID string, doc domain.Document) (domain.Transaction, error) {
	var m models.Transaction
	if err := doc.Decode(&m); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %w", apperrors.ErrRead, err)
	}

	date, err := ParseTime("date", m.Date)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", doc.ID, err)
	}

	var timestamp = date
	if m.Timestamp != "" {
		timestamp, err = ParseTime("timestamp", m.Timestamp)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("transaction %s: %w", doc.ID, err)
		}
	}

	var link domain.LinkedTransactionID
	if m.LinkedTransactionID != nil {
		link = domain.LinkedTransactionID(*m.LinkedTransactionID)
	}

	return domain.Transaction{
		TransactionID:       doc.ID,
		ProjectID:           projectID,
		Description:         m.Description,
		Amount:              m.Amount,
		Category:            m.Category,
		Account:             m.Account,
		Type:                domain.TransactionType(m.Type),
		Date:                date,
		LinkedTransactionID: link,
		Timestamp:           timestamp,
		Seq:                 doc.Seq,
	}, nil
}

// ToDomainTransactionSlice converts listed documents to domain Transactions,
// keeping the store's order.
func ToDomainTransactionSlice(projectID string, docs []domain.Document) ([]domain.Transaction, error) {
	ds := make([]domain.Transaction, 0, len(docs))
	for _, doc := range docs {
		txn, err := ToDomainTransaction(projectID, doc)
		if err != nil {
			return nil, err
		}
		ds = append(ds, txn)
	}
	return ds, nil
}
