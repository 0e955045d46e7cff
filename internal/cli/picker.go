package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/fundalloc/internal/cli/formatter"
	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/alexanderramin/fundalloc/internal/repository"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var errNoPayors = errors.New("no payors with unpaid assessments")

func fundallocHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func payorOptionLabel(s repository.PayorSummary) string {
	return fmt.Sprintf("%s  TC%d  unallocated %s of %s",
		s.Payor.Name, s.Payor.TCID, formatter.Money(s.Unallocated()), formatter.Money(s.Payor.Fund))
}

// newPayorPickerForm builds a select over payors that still owe something.
// It returns nil when there is nothing to pick.
func newPayorPickerForm(sums []repository.PayorSummary, result *domain.BatchKey) *huh.Form {
	options := make([]huh.Option[domain.BatchKey], 0, len(sums))
	for _, s := range sums {
		if s.UnpaidCount == 0 {
			continue
		}
		options = append(options, huh.NewOption(payorOptionLabel(s), s.Payor.Key()))
	}
	if len(options) == 0 {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.BatchKey]().
				Title("Which payor?").
				Options(options...).
				Value(result),
		),
	).WithTheme(fundallocHuhTheme()).WithShowHelp(false)
}

// pickPayor asks the operator to choose a payor of business bid.
func pickPayor(ctx context.Context, app *App, bid int64) (domain.BatchKey, error) {
	sums, err := app.Payors.List(ctx, bid)
	if err != nil {
		return domain.BatchKey{}, err
	}
	var key domain.BatchKey
	form := newPayorPickerForm(sums, &key)
	if form == nil {
		return domain.BatchKey{}, errNoPayors
	}
	if err := form.RunWithContext(ctx); err != nil {
		return domain.BatchKey{}, err
	}
	return key, nil
}
