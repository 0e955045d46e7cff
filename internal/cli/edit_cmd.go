package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/fundalloc/internal/cli/formatter"
	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("alloc edit needs an interactive terminal; use 'alloc set' instead")

func newAllocEditCmd(app *App) *cobra.Command {
	var flags *batchFlags

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit allocations in an interactive grid",
		Long: "Edit allocations in an interactive grid. Without --tcid the payor is\n" +
			"picked from those of --bid that still owe something.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			ctx := cmd.Context()

			key, err := flags.key()
			if flags.tcid == 0 {
				key, err = pickPayor(ctx, app, flags.bid)
			}
			if err != nil {
				return err
			}

			final, err := app.runProgram(newAllocGridModel(app.Allocations, key))
			if err != nil {
				return fmt.Errorf("running allocation grid: %w", err)
			}
			if grid, ok := final.(*allocGridModel); ok && grid.outcome != nil {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBatch(batchView(grid.outcome)))
			}
			return nil
		},
	}

	flags = addBatchFlags(cmd, app, false)

	return cmd
}
