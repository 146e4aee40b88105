package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeSignedAmount(t *testing.T) {
	tests := []struct {
		name      string
		txnType   domain.TransactionType
		magnitude string
		want      string
		wantErr   bool
	}{
		{name: "income stays positive", txnType: domain.Income, magnitude: "1000", want: "1000"},
		{name: "return stays positive", txnType: domain.Return, magnitude: "200", want: "200"},
		{name: "expense is negated", txnType: domain.Expense, magnitude: "500", want: "-500"},
		{name: "loan is negated", txnType: domain.Loan, magnitude: "200", want: "-200"},
		{name: "fractional magnitude", txnType: domain.Expense, magnitude: "0.1", want: "-0.1"},
		{name: "zero expense", txnType: domain.Expense, magnitude: "0", want: "0"},
		{name: "negative magnitude", txnType: domain.Income, magnitude: "-1", wantErr: true},
		{name: "unknown type", txnType: "transfer", magnitude: "10", wantErr: true},
		{name: "empty type", txnType: "", magnitude: "10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeSignedAmount(tt.txnType, dec(tt.magnitude))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestComputeBalance(t *testing.T) {
	assert.True(t, ComputeBalance(nil).IsZero(), "empty list balances to zero")

	list := []domain.Transaction{
		{TransactionID: "a", Amount: dec("0.1")},
		{TransactionID: "b", Amount: dec("0.2")},
		{TransactionID: "c", Amount: dec("-0.3")},
	}
	assert.True(t, ComputeBalance(list).IsZero(), "decimal sums are exact")

	list = append(list, domain.Transaction{TransactionID: "d", Amount: dec("1234.56")})
	assert.Equal(t, "1234.56", ComputeBalance(list).String())
}

func TestOrderTransactions(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	day2Later := day2.Add(3 * time.Hour)

	input := []domain.Transaction{
		{TransactionID: "old", Date: day1, Seq: 1},
		{TransactionID: "mid-b", Date: day2, Seq: 3},
		{TransactionID: "new", Date: day2Later, Seq: 4},
		{TransactionID: "mid-a", Date: day2, Seq: 2},
	}

	ordered := OrderTransactions(input)
	assert.Equal(t, []string{"new", "mid-a", "mid-b", "old"}, ids(ordered))
	assert.Equal(t, "old", input[0].TransactionID, "input is not reordered in place")

	t.Run("idempotent", func(t *testing.T) {
		assert.Equal(t, ordered, OrderTransactions(ordered))
	})

	t.Run("identical keys keep input order", func(t *testing.T) {
		same := []domain.Transaction{
			{TransactionID: "x", Date: day1},
			{TransactionID: "y", Date: day1},
			{TransactionID: "z", Date: day2},
		}
		assert.Equal(t, []string{"z", "x", "y"}, ids(OrderTransactions(same)))

		swapped := []domain.Transaction{same[1], same[0], same[2]}
		assert.Equal(t, []string{"z", "y", "x"}, ids(OrderTransactions(swapped)))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, OrderTransactions(nil))
	})
}

func TestResolveHighlight(t *testing.T) {
	list := []domain.Transaction{
		{TransactionID: "T1", Type: domain.Loan, Amount: dec("-200")},
		{TransactionID: "T2", Type: domain.Return, Amount: dec("200"), LinkedTransactionID: "T1"},
	}

	got := ResolveHighlight(list, list[1].LinkedTransactionID.String())
	assert.Equal(t, []string{"T1"}, got.IDs())
	assert.True(t, got.Contains("T1"))
	assert.False(t, got.Contains("T2"))

	assert.Empty(t, ResolveHighlight(list, "deleted-target"), "dangling link resolves to nothing")
	assert.Empty(t, ResolveHighlight(list, ""))
	assert.Empty(t, ResolveHighlight(nil, "T1"))
}

func TestCombineDateAndClock(t *testing.T) {
	picked := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 7, 9, 14, 5, 6, 700, time.UTC)

	got := CombineDateAndClock(picked, now)
	assert.Equal(t, time.Date(2024, 3, 1, 14, 5, 6, 700, time.UTC), got)

	t.Run("now in another zone is read as UTC", func(t *testing.T) {
		zone := time.FixedZone("UTC+2", 2*60*60)
		got := CombineDateAndClock(picked, time.Date(2025, 7, 9, 1, 0, 0, 0, zone))
		assert.Equal(t, time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC), got)
	})
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0"},
		{in: "700", want: "700"},
		{in: "1000", want: "1 000"},
		{in: "-500", want: "-500"},
		{in: "-1234567.5", want: "-1 234 567.5"},
		{in: "123456", want: "123 456"},
		{in: "1234.056", want: "1 234.056"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(dec(tt.in)))
		})
	}
}

func TestScenarios(t *testing.T) {
	t.Run("rent expense", func(t *testing.T) {
		amount, err := ComputeSignedAmount(domain.Expense, dec("500"))
		require.NoError(t, err)
		assert.Equal(t, "-500", amount.String())

		list := []domain.Transaction{{TransactionID: "rent", Amount: amount}}
		assert.Equal(t, "-500", ComputeBalance(list).String())
	})

	t.Run("income then expense", func(t *testing.T) {
		income, err := ComputeSignedAmount(domain.Income, dec("1000"))
		require.NoError(t, err)
		expense, err := ComputeSignedAmount(domain.Expense, dec("300"))
		require.NoError(t, err)

		list := []domain.Transaction{{Amount: income}, {Amount: expense}}
		assert.Equal(t, "700", ComputeBalance(list).String())
	})
}

func ids(list []domain.Transaction) []string {
	out := make([]string, 0, len(list))
	for _, txn := range list {
		out = append(out, txn.TransactionID)
	}
	return out
}
