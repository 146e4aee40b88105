package accounting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeSignedAmount applies the sign rule to a user-entered magnitude.
// Income and return are credits and stay positive; expense and loan are debits
// and are negated. The result is what gets persisted; the type is never
// re-derived from the sign afterwards.
func ComputeSignedAmount(txnType domain.TransactionType, magnitude decimal.Decimal) (decimal.Decimal, error) {
	if magnitude.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount must be non-negative, got %s", apperrors.ErrValidation, magnitude.String())
	}

	switch txnType {
	case domain.Income, domain.Return:
		return magnitude, nil
	case domain.Expense, domain.Loan:
		return magnitude.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown transaction type '%s'", apperrors.ErrValidation, txnType)
	}
}

// OrderTransactions returns a copy of list ordered newest date first. Entries
// sharing a date are ordered by insertion sequence, and entries with identical
// keys keep their relative input order. The input slice is not modified.
func OrderTransactions(list []domain.Transaction) []domain.Transaction {
	ordered := make([]domain.Transaction, len(list))
	copy(ordered, list)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderKey().Before(ordered[j].OrderKey())
	})
	return ordered
}

// ComputeBalance sums the signed amounts of list. An empty list yields zero.
func ComputeBalance(list []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range list {
		sum = sum.Add(txn.Amount)
	}
	return sum
}

// HighlightSet holds the transaction IDs to mark in a listing.
type HighlightSet map[string]struct{}

// Contains reports whether id is highlighted.
func (h HighlightSet) Contains(id string) bool {
	_, ok := h[id]
	return ok
}

// IDs returns the highlighted IDs in sorted order.
func (h HighlightSet) IDs() []string {
	ids := make([]string, 0, len(h))
	for id := range h {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ResolveHighlight returns {targetID} when some entry of list has that ID and
// an empty set otherwise. Dangling links resolve to the empty set.
func ResolveHighlight(list []domain.Transaction, targetID string) HighlightSet {
	set := HighlightSet{}
	if targetID == "" {
		return set
	}
	for _, txn := range list {
		if txn.TransactionID == targetID {
			set[targetID] = struct{}{}
			break
		}
	}
	return set
}

// CombineDateAndClock builds a transaction date from the calendar day of date
// and the time-of-day of now, both taken in UTC.
func CombineDateAndClock(date, now time.Time) time.Time {
	y, m, d := date.UTC().Date()
	now = now.UTC()
	return time.Date(y, m, d, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC)
}

// FormatAmount renders amount with its integer digits grouped in threes by a
// space, e.g. -1234567.5 becomes "-1 234 567.5".
func FormatAmount(amount decimal.Decimal) string {
	s := amount.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
