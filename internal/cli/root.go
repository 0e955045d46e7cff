package cli

import (
	"github.com/alexanderramin/fundalloc/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Payors      service.PayorService
	Allocations service.AllocationService
	Import      service.ImportService

	// DefaultBID is used when a command is run without --bid.
	DefaultBID int64

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// RunProgram runs an interactive model to completion. Tests replace it
	// to avoid starting a real terminal program.
	RunProgram func(m tea.Model) (tea.Model, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runProgram(m tea.Model) (tea.Model, error) {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

// NewRootCmd creates the top-level "fundalloc" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "fundalloc",
		Short:         "Allocate payor funds across unpaid assessments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPayorCmd(app),
		newAllocCmd(app),
		newImportCmd(app),
	)

	return root
}
