package bolt

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/SscSPs/project_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// sortByField stable-sorts docs by a top-level field. Missing and null values
// sort first in ascending order. Numbers compare numerically, everything else
// by its JSON text.
func sortByField(docs []domain.Document, orderBy domain.OrderBy) error {
	keys := make([]json.RawMessage, len(docs))
	for i, d := range docs {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(d.Fields, &fields); err != nil {
			return err
		}
		keys[i] = fields[orderBy.Field]
	}

	idx := make([]int, len(docs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		c := compareValues(keys[idx[a]], keys[idx[b]])
		if orderBy.Descending {
			return c > 0
		}
		return c < 0
	})

	sorted := make([]domain.Document, len(docs))
	for i, j := range idx {
		sorted[i] = docs[j]
	}
	copy(docs, sorted)
	return nil
}

func compareValues(a, b json.RawMessage) int {
	a, b = bytes.TrimSpace(a), bytes.TrimSpace(b)
	aNull, bNull := isNull(a), isNull(b)
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return -1
	case bNull:
		return 1
	}

	if da, err := decimal.NewFromString(string(a)); err == nil {
		if db, err := decimal.NewFromString(string(b)); err == nil {
			return da.Cmp(db)
		}
	}

	var sa, sb string
	if json.Unmarshal(a, &sa) == nil && json.Unmarshal(b, &sb) == nil {
		return strings.Compare(sa, sb)
	}
	return bytes.Compare(a, b)
}

func isNull(v json.RawMessage) bool {
	return len(v) == 0 || string(v) == "null"
}
