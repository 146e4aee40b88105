package mapping

import (
	"fmt"
	"time"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/models"
)

// FormatTime renders t in the persisted fixed-width UTC layout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(models.DateLayout)
}

// ParseTime parses a persisted timestamp. Older documents written with
// RFC3339 (variable fractional width) are accepted too.
func ParseTime(field, value string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, value)
	if err == nil {
		return t.UTC(), nil
	}
	t, err = time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid %s %q", apperrors.ErrRead, field, value)
	}
	return t.UTC(), nil
}
