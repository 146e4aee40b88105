package commands_test

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/commands"
)

func runLedgerctl(t *testing.T, db string, args ...string) (string, string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--db", db}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

var createdProject = regexp.MustCompile(`Created project (\S+) `)

func createProject(t *testing.T, db, name string) string {
	t.Helper()
	out, _, err := runLedgerctl(t, db, "project", "create", "--name", name)
	require.NoError(t, err)
	m := createdProject.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

// firstTransactionID returns the ID of the first row of a ledger table.
func firstTransactionID(t *testing.T, out string) string {
	t.Helper()
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if strings.Contains(line, "DESCRIPTION") && i+1 < len(lines) {
			fields := strings.Fields(lines[i+1])
			require.NotEmpty(t, fields, out)
			return fields[0]
		}
	}
	t.Fatalf("no ledger table in output:\n%s", out)
	return ""
}

func TestProjectCreateAndList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ledger.db")
	id := createProject(t, db, "Trip")

	out, _, err := runLedgerctl(t, db, "--user", "alice", "project", "create", "--name", "Home")
	require.NoError(t, err)
	assert.Contains(t, out, "(Home)")

	out, _, err = runLedgerctl(t, db, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Trip")
	assert.Contains(t, out, "alice")
}

func TestProjectCreate_RequiresName(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ledger.db")
	_, _, err := runLedgerctl(t, db, "project", "create")
	assert.Error(t, err)

	_, _, err = runLedgerctl(t, db, "project", "create", "--name", "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCategoryAndAccount(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ledger.db")

	out, _, err := runLedgerctl(t, db, "category", "create", "--name", "Food", "--icon", "F")
	require.NoError(t, err)
	assert.Contains(t, out, "Food")

	out, _, err = runLedgerctl(t, db, "category", "create", "--name", "Rent")
	require.NoError(t, err)
	assert.Contains(t, out, "Food", "create lists every category")
	assert.Contains(t, out, "Rent")

	out, _, err = runLedgerctl(t, db, "account", "create", "--name", "Checking")
	require.NoError(t, err)
	assert.Contains(t, out, "Checking")

	out, _, err = runLedgerctl(t, db, "account", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Checking")
}

func TestTxIncomeThenExpense(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ledger.db")
	project := createProject(t, db, "Household")

	_, _, err := runLedgerctl(t, db, "tx", "add", project,
		"--description", "Salary", "--amount", "1000", "--category", "Work", "--account", "Checking",
		"--type", "income", "--date", "2024-03-01")
	require.NoError(t, err)

	out, _, err := runLedgerctl(t, db, "tx", "add", project,
		"--description", "Groceries", "--amount", "300", "--category", "Food", "--account", "Checking",
		"--type", "expense", "--date", "2024-03-02")
	require.NoError(t, err)
	assert.Contains(t, out, "Balance: 700")
	assert.Contains(t, out, "-300")

	out, _, err = runLedgerctl(t, db, "tx", "list", project)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Groceries"), strings.Index(out, "Salary"), "newest first")
}

func TestTxAdd_Invalid(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ledger.db")
	project := createProject(t, db, "Household")

	tests := []struct {
		name string
		args []string
	}{
		{name: "negative amount", args: []string{"--amount", "-5", "--type", "income", "--date", "2024-03-01"}},
		{name: "unknown type", args: []string{"--amount", "5", "--type", "gift", "--date", "2024-03-01"}},
		{name: "bad date", args: []string{"--amount", "5", "--type", "income", "--date", "03/01/2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"tx", "add", project, "--description", "x", "--category", "c", "--account", "a"}, tt.args...)
			_, _, err := runLedgerctl(t, db, args...)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	out, _, err := runLedgerctl(t, db, "tx", "list", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Balance: 0")
}

func TestTxLoanReturnHighlightAndDelete(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ledger.db")
	project := createProject(t, db, "Friends")

	out, _, err := runLedgerctl(t, db, "tx", "add", project,
		"--description", "Lent to Sam", "--amount", "200", "--category", "Loans", "--account", "Cash",
		"--type", "loan", "--date", "2024-03-01")
	require.NoError(t, err)
	loanID := firstTransactionID(t, out)

	out, _, err = runLedgerctl(t, db, "tx", "add", project,
		"--description", "Sam paid back", "--amount", "200", "--category", "Loans", "--account", "Cash",
		"--type", "return", "--date", "2024-03-05", "--link", loanID)
	require.NoError(t, err)
	assert.Contains(t, out, "Balance: 0")

	out, _, err = runLedgerctl(t, db, "tx", "highlight", project, loanID)
	require.NoError(t, err)
	assert.Regexp(t, `\*\s+`+regexp.QuoteMeta(loanID), out)

	_, _, err = runLedgerctl(t, db, "tx", "delete", project, loanID)
	require.NoError(t, err)

	out, stderr, err := runLedgerctl(t, db, "tx", "highlight", project, loanID)
	require.NoError(t, err)
	assert.Contains(t, stderr, "is not in this ledger")
	assert.NotContains(t, out, "*")
	assert.Contains(t, out, loanID, "the return keeps its dangling link")
	assert.Contains(t, out, "Balance: 200")

	_, _, err = runLedgerctl(t, db, "tx", "delete", project, loanID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTxList_UnknownProject(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ledger.db")
	_, _, err := runLedgerctl(t, db, "tx", "list", "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The store is released after a failed command.
	createProject(t, db, "After")
}

func TestEventsWatch_RequiresURL(t *testing.T) {
	_, _, err := runLedgerctl(t, filepath.Join(t.TempDir(), "ledger.db"), "events", "watch")
	assert.EqualError(t, err, "--amqp-url is required")
}
