package cli

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/alexanderramin/fundalloc/internal/repository"
	"github.com/alexanderramin/fundalloc/internal/service"
	"github.com/alexanderramin/fundalloc/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) (*App, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	return &App{
		Payors: service.NewPayorService(repository.NewSQLitePayorRepo(database)),
		Allocations: service.NewAllocationService(
			repository.NewSQLiteBatchStore(database),
			repository.NewSQLiteAllocationEventRepo(database),
			uow,
		),
		Import:     service.NewImportService(uow),
		DefaultBID: 1,
	}, database
}

// seeded is a payor TC7 of business 1 with a fund of 100 owing 50 (rent)
// and 80 (water).
type seeded struct {
	key   domain.BatchKey
	rent  *domain.AssessmentRow
	water *domain.AssessmentRow
}

func seedPayorWithRows(t *testing.T, database *sql.DB) seeded {
	t.Helper()
	ctx := context.Background()

	payor := testutil.NewTestPayor(1, 7, "Aaron Read", testutil.WithFund("100"))
	require.NoError(t, repository.NewSQLitePayorRepo(database).Create(ctx, payor))

	key := payor.Key()
	rent := testutil.NewTestAssessment(key, "Rent", "50")
	water := testutil.NewTestAssessment(key, "Water", "80")
	assessments := repository.NewSQLiteAssessmentRepo(database)
	require.NoError(t, assessments.Create(ctx, rent))
	require.NoError(t, assessments.Create(ctx, water))

	return seeded{key: key, rent: rent, water: water}
}

func storedAllocate(t *testing.T, database *sql.DB, id int64) string {
	t.Helper()
	row, err := repository.NewSQLiteAssessmentRepo(database).GetByID(context.Background(), id)
	require.NoError(t, err)
	return row.Allocate.StringFixed(2)
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}

// ansiPattern matches ANSI escape sequences so assertions are terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func idArg(id int64) string {
	return strconv.FormatInt(id, 10)
}

// --- payor ---

func TestPayorAdd_ThenList(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "payor", "add", "--tcid", "3", "--name", "Kirsten Read", "--fund", "$1,250.50")
	require.NoError(t, err)
	assert.Contains(t, out, "Created payor Kirsten Read [B1/TC3] with fund 1,250.50")

	out, err = executeCmd(t, app, "payor", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Kirsten Read")
	assert.Contains(t, out, "1,250.50")
}

func TestPayorAdd_InvalidFund(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "payor", "add", "--tcid", "3", "--name", "X", "--fund", "lots")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNonNumericInput)
}

func TestPayorAdd_RequiresName(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "payor", "add", "--tcid", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestPayorList_Empty(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "payor", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No payors found.")
}

func TestPayorFund_UpdatesFund(t *testing.T) {
	app, database := testApp(t)
	seedPayorWithRows(t, database)

	out, err := executeCmd(t, app, "payor", "fund", "--tcid", "7", "250")
	require.NoError(t, err)
	assert.Contains(t, out, "Fund for Aaron Read [B1/TC7] is now 250.00")
}

func TestPayorFund_UnknownPayor(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "payor", "fund", "--tcid", "99", "10")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- alloc ---

func TestAllocShow_RendersRowsAndRemainder(t *testing.T) {
	app, database := testApp(t)
	seedPayorWithRows(t, database)

	out, err := executeCmd(t, app, "alloc", "show", "--tcid", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Aaron Read")
	assert.Contains(t, out, "Rent")
	assert.Contains(t, out, "Water")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "Fund: 100.00   Unallocated: 100.00")
}

func TestAllocShow_RequiresTCID(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "alloc", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tcid")
}

func TestAllocShow_RejectsNonPositiveBID(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "alloc", "show", "--bid", "0", "--tcid", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--bid must be positive")
}

func TestAllocSet_ClampsToOwed(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)

	out, err := executeCmd(t, app, "alloc", "set", "--tcid", "7", idArg(s.rent.ID), "60")
	require.NoError(t, err)
	assert.Contains(t, out, "0.00 → 50.00")
	assert.Contains(t, out, "OWED")
	assert.Contains(t, out, "Unallocated: 50.00")
	assert.Equal(t, "50.00", storedAllocate(t, database, s.rent.ID))
}

func TestAllocSet_ClampsToFundsLeft(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)

	_, err := executeCmd(t, app, "alloc", "set", "--tcid", "7", idArg(s.rent.ID), "50")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "alloc", "set", "--tcid", "7", idArg(s.water.ID), "80")
	require.NoError(t, err)
	assert.Contains(t, out, "FUNDS")
	assert.Contains(t, out, "only 50.00 of the fund remains")
	assert.Equal(t, "50.00", storedAllocate(t, database, s.water.ID))
}

func TestAllocSet_NonNumericAmount(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)

	_, err := executeCmd(t, app, "alloc", "set", "--tcid", "7", idArg(s.rent.ID), "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNonNumericInput)
	assert.Equal(t, "0.00", storedAllocate(t, database, s.rent.ID))
}

func TestAllocSet_UnknownRow(t *testing.T) {
	app, database := testApp(t)
	seedPayorWithRows(t, database)

	_, err := executeCmd(t, app, "alloc", "set", "--tcid", "7", "424242", "10")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRowReference)
}

func TestAllocSet_BadRowID(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "alloc", "set", "--tcid", "7", "first", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid row id "first"`)
}

func TestAllocDate_SetsAndClears(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)
	assessments := repository.NewSQLiteAssessmentRepo(database)

	out, err := executeCmd(t, app, "alloc", "date", "--tcid", "7", idArg(s.rent.ID), "2026-02-03")
	require.NoError(t, err)
	assert.Contains(t, out, "payment date: 2026-02-03")

	row, err := assessments.GetByID(context.Background(), s.rent.ID)
	require.NoError(t, err)
	require.NotNil(t, row.PaymentDate)
	assert.Equal(t, "2026-02-03", row.PaymentDate.Format(dateLayout))

	_, err = executeCmd(t, app, "alloc", "date", "--tcid", "7", idArg(s.rent.ID), "none")
	require.NoError(t, err)
	row, err = assessments.GetByID(context.Background(), s.rent.ID)
	require.NoError(t, err)
	assert.Nil(t, row.PaymentDate)
}

func TestAllocDate_InvalidDate(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)

	_, err := executeCmd(t, app, "alloc", "date", "--tcid", "7", idArg(s.rent.ID), "03/02/2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected YYYY-MM-DD")
}

func TestAllocReset_ClearsAllocations(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)
	_, err := executeCmd(t, app, "alloc", "set", "--tcid", "7", idArg(s.rent.ID), "40")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "alloc", "reset", "--tcid", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 allocations. Unallocated: 100.00")
	assert.Equal(t, "0.00", storedAllocate(t, database, s.rent.ID))
}

func TestAllocHistory_ListsEvents(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)

	out, err := executeCmd(t, app, "alloc", "history", "--tcid", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "No allocation history.")

	_, err = executeCmd(t, app, "alloc", "set", "--tcid", "7", idArg(s.rent.ID), "60")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "alloc", "history", "--tcid", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "PROPOSED")
	assert.Contains(t, out, "60.00")
	assert.Contains(t, out, "OWED")
}

// --- alloc edit ---

func TestAllocEdit_NonInteractive(t *testing.T) {
	app, database := testApp(t)
	seedPayorWithRows(t, database)

	_, err := executeCmd(t, app, "alloc", "edit", "--tcid", "7")
	require.ErrorIs(t, err, errNotInteractive)
}

func TestAllocEdit_RunsGridAndPrintsFinalBatch(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)
	app.IsInteractive = func() bool { return true }

	var started *allocGridModel
	app.RunProgram = func(m tea.Model) (tea.Model, error) {
		grid, ok := m.(*allocGridModel)
		require.True(t, ok)
		started = grid
		outcome, err := app.Allocations.Allocate(context.Background(), s.key, s.rent.ID, "30")
		require.NoError(t, err)
		grid.outcome = outcome
		return grid, nil
	}

	out, err := executeCmd(t, app, "alloc", "edit", "--tcid", "7")
	require.NoError(t, err)
	require.NotNil(t, started)
	assert.Equal(t, s.key, started.key)
	assert.Contains(t, out, "Unallocated: 70.00")
}

func TestAllocEdit_NoPayorsToPick(t *testing.T) {
	app, _ := testApp(t)
	app.IsInteractive = func() bool { return true }

	_, err := executeCmd(t, app, "alloc", "edit")
	require.ErrorIs(t, err, errNoPayors)
}

// --- import ---

func TestImport_LoadsRentRoll(t *testing.T) {
	app, _ := testApp(t)
	path := filepath.Join(t.TempDir(), "rentroll.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
payors:
  - bid: 1
    tcid: 10
    name: Aaron Read
    fund: "100"
    assessments:
      - {asmid: 501, name: Rent, date: "2026-01-01", amount: "50"}
`), 0o644))

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 payors and 1 assessments")

	out, err = executeCmd(t, app, "alloc", "show", "--tcid", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Rent")
}

func TestImport_MissingFile(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "import", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
