package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/project_ledger/internal/events"
)

func TestWriteEvent(t *testing.T) {
	var buf bytes.Buffer
	e := &events.LedgerEvent{
		Type:          events.TransactionAdded,
		ProjectID:     "p1",
		TransactionID: "t1",
		UserID:        "u1",
		Balance:       decimal.RequireFromString("-1234.5"),
		OccurredAt:    time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	require.NoError(t, writeEvent(&buf, e))
	assert.Equal(t, "2024-03-01T09:30:00Z transaction.added   project=p1 transaction=t1 user=u1 balance=-1 234.5\n", buf.String())
}
