package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/alexanderramin/fundalloc/internal/repository"
	"github.com/alexanderramin/fundalloc/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGridDriver(t *testing.T, app *App, key domain.BatchKey) (*teatest.Driver, *allocGridModel) {
	t.Helper()
	m := newAllocGridModel(app.Allocations, key)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	return d, m
}

func gridView(d *teatest.Driver) string {
	return ansiPattern.ReplaceAllString(d.View(), "")
}

func TestAllocGrid_LoadsBatch(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)

	d, m := newGridDriver(t, app, s.key)

	assert.False(t, m.loading)
	require.NotNil(t, m.outcome)
	view := gridView(d)
	assert.Contains(t, view, "Aaron Read")
	assert.Contains(t, view, "Rent")
	assert.Contains(t, view, "Water")
	assert.Contains(t, view, "Unallocated: 100.00")
	assert.Contains(t, view, "▸")
}

func TestAllocGrid_UnknownPayorShowsError(t *testing.T) {
	app, _ := testApp(t)

	d, m := newGridDriver(t, app, domain.BatchKey{BID: 1, TCID: 404})

	require.ErrorIs(t, m.err, repository.ErrNotFound)
	assert.Contains(t, gridView(d), "Error:")
}

func TestAllocGrid_CursorStaysInBounds(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)
	d, m := newGridDriver(t, app, s.key)

	d.Press(tea.KeyUp)
	assert.Equal(t, 0, m.cursor)
	d.Press(tea.KeyDown)
	d.PressRune('j')
	assert.Equal(t, 1, m.cursor)
	d.PressRune('k')
	assert.Equal(t, 0, m.cursor)
}

func TestAllocGrid_EditAmountClampsToOwed(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)
	d, m := newGridDriver(t, app, s.key)

	d.Press(tea.KeyEnter)
	require.Equal(t, gridEditAmount, m.mode)
	d.Submit("60")

	assert.Equal(t, gridBrowse, m.mode)
	assert.Equal(t, "50.00", storedAllocate(t, database, s.rent.ID))
	view := gridView(d)
	assert.Contains(t, view, "OWED")
	assert.Contains(t, view, "Unallocated: 50.00")
}

func TestAllocGrid_EditSecondRowClampsToFundsLeft(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)
	d, _ := newGridDriver(t, app, s.key)

	d.PressRune('e')
	d.Submit("50")
	d.Press(tea.KeyDown)
	d.PressRune('e')
	d.Submit("80")

	assert.Equal(t, "50.00", storedAllocate(t, database, s.water.ID))
	view := gridView(d)
	assert.Contains(t, view, "FUNDS")
	assert.Contains(t, view, "Unallocated: 0.00")
}

func TestAllocGrid_EscCancelsEdit(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)
	d, m := newGridDriver(t, app, s.key)

	d.Press(tea.KeyEnter)
	d.Type("10")
	d.Press(tea.KeyEsc)

	assert.Equal(t, gridBrowse, m.mode)
	assert.Equal(t, "0.00", storedAllocate(t, database, s.rent.ID))
}

func TestAllocGrid_EmptySubmitDoesNothing(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)
	d, m := newGridDriver(t, app, s.key)

	d.Press(tea.KeyEnter)
	d.Press(tea.KeyEnter)

	assert.Equal(t, gridBrowse, m.mode)
	assert.Empty(t, m.status)
	assert.Equal(t, "0.00", storedAllocate(t, database, s.rent.ID))
}

func TestAllocGrid_NonNumericInputKeepsBatch(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)
	d, m := newGridDriver(t, app, s.key)

	d.Press(tea.KeyEnter)
	d.Submit("abc")

	require.NotNil(t, m.outcome)
	assert.NoError(t, m.err)
	view := gridView(d)
	assert.Contains(t, view, "Error:")
	assert.Contains(t, view, "Rent")
	assert.Equal(t, "0.00", storedAllocate(t, database, s.rent.ID))
}

func TestAllocGrid_EditPaymentDate(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)
	d, m := newGridDriver(t, app, s.key)

	d.PressRune('d')
	require.Equal(t, gridEditDate, m.mode)
	d.Submit("2026-02-03")

	row, err := repository.NewSQLiteAssessmentRepo(database).GetByID(context.Background(), s.rent.ID)
	require.NoError(t, err)
	require.NotNil(t, row.PaymentDate)
	assert.Equal(t, "2026-02-03", row.PaymentDate.Format(dateLayout))
	assert.Contains(t, gridView(d), "payment date: 2026-02-03")
}

func TestAllocGrid_ResetClearsAllocations(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)
	d, m := newGridDriver(t, app, s.key)

	d.Press(tea.KeyEnter)
	d.Submit("20")
	require.Equal(t, "20.00", storedAllocate(t, database, s.rent.ID))

	d.PressRune('R')

	assert.Equal(t, "0.00", storedAllocate(t, database, s.rent.ID))
	assert.Equal(t, "Cleared 1 allocations", m.status)
}

func TestAllocGrid_Quit(t *testing.T) {
	app, database := testApp(t)
	s := seedPayorWithRows(t, database)
	d, _ := newGridDriver(t, app, s.key)

	d.PressRune('q')

	assert.True(t, d.Quitting)
}

func TestPayorPickerForm_OnlyPayorsWithUnpaidRows(t *testing.T) {
	app, database := testApp(t)
	seedPayorWithRows(t, database)
	ctx := context.Background()

	sums, err := app.Payors.List(ctx, 1)
	require.NoError(t, err)

	var key domain.BatchKey
	assert.NotNil(t, newPayorPickerForm(sums, &key))

	for i := range sums {
		sums[i].UnpaidCount = 0
	}
	assert.Nil(t, newPayorPickerForm(sums, &key))
}
