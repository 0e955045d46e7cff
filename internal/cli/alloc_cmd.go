package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/fundalloc/internal/cli/formatter"
	"github.com/alexanderramin/fundalloc/internal/service"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func newAllocCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alloc",
		Short: "Allocate a payor's fund across unpaid assessments",
	}

	cmd.AddCommand(
		newAllocShowCmd(app),
		newAllocSetCmd(app),
		newAllocDateCmd(app),
		newAllocResetCmd(app),
		newAllocHistoryCmd(app),
		newAllocEditCmd(app),
	)

	return cmd
}

func batchView(outcome *service.AllocationOutcome) formatter.BatchView {
	return formatter.BatchView{
		Batch:       outcome.Batch,
		Unallocated: outcome.Unallocated,
		Violations:  outcome.Violations,
	}
}

func parseRowID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid row id %q", s)
	}
	return id, nil
}

// parseOptionalDate accepts YYYY-MM-DD, or "none" or "" to clear.
func parseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return &d, nil
}

func newAllocShowCmd(app *App) *cobra.Command {
	var flags *batchFlags

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show unpaid assessments, allocations and the unallocated remainder",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := flags.key()
			if err != nil {
				return err
			}
			outcome, err := app.Allocations.Load(cmd.Context(), key)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBatch(batchView(outcome)))
			return nil
		},
	}

	flags = addBatchFlags(cmd, app, true)

	return cmd
}

func newAllocSetCmd(app *App) *cobra.Command {
	var flags *batchFlags

	cmd := &cobra.Command{
		Use:   "set ROWID AMOUNT",
		Short: "Propose an allocation for one assessment",
		Long: "Propose an allocation for one assessment. The stored amount is limited by\n" +
			"the fund left after the other rows' allocations and then by the amount owed.\n" +
			"Zero or a negative amount clears the row.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := flags.key()
			if err != nil {
				return err
			}
			rowID, err := parseRowID(args[0])
			if err != nil {
				return err
			}
			outcome, err := app.Allocations.Allocate(cmd.Context(), key, rowID, args[1])
			if err != nil {
				return err
			}
			var body strings.Builder
			if res, ok := outcome.Result(); ok {
				body.WriteString(formatter.FormatResult(res))
			}
			body.WriteString("Unallocated: " + formatter.MoneyStyled(outcome.Unallocated))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox(outcome.Batch.PayorName, body.String()))
			return nil
		},
	}

	flags = addBatchFlags(cmd, app, true)

	return cmd
}

func newAllocDateCmd(app *App) *cobra.Command {
	var flags *batchFlags

	cmd := &cobra.Command{
		Use:   "date ROWID YYYY-MM-DD|none",
		Short: "Record the payment date of an assessment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := flags.key()
			if err != nil {
				return err
			}
			rowID, err := parseRowID(args[0])
			if err != nil {
				return err
			}
			date, err := parseOptionalDate(args[1])
			if err != nil {
				return err
			}
			if _, err := app.Allocations.SetPaymentDate(cmd.Context(), key, rowID, date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Row %d payment date: %s\n", rowID, formatter.Date(date))
			return nil
		},
	}

	flags = addBatchFlags(cmd, app, true)

	return cmd
}

func newAllocResetCmd(app *App) *cobra.Command {
	var flags *batchFlags

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear every allocation of a payor",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := flags.key()
			if err != nil {
				return err
			}
			outcome, err := app.Allocations.Reset(cmd.Context(), key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d allocations. Unallocated: %s\n",
				len(outcome.Results), formatter.Money(outcome.Unallocated))
			return nil
		},
	}

	flags = addBatchFlags(cmd, app, true)

	return cmd
}

func newAllocHistoryCmd(app *App) *cobra.Command {
	var flags *batchFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent allocation changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := flags.key()
			if err != nil {
				return err
			}
			events, err := app.Allocations.History(cmd.Context(), key, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(events))
			return nil
		},
	}

	flags = addBatchFlags(cmd, app, true)
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events (0 for all)")

	return cmd
}
