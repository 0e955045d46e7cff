package cli

import (
	"fmt"

	"github.com/alexanderramin/fundalloc/internal/cli/formatter"
	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/spf13/cobra"
)

func newPayorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payor",
		Short: "Manage payors and their funds",
	}

	cmd.AddCommand(
		newPayorListCmd(app),
		newPayorAddCmd(app),
		newPayorFundCmd(app),
	)

	return cmd
}

func newPayorListCmd(app *App) *cobra.Command {
	var bid int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payors with their funds and unallocated balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			sums, err := app.Payors.List(cmd.Context(), bid)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(sums) == 0 {
				fmt.Fprintln(out, "No payors found.")
				return nil
			}
			fmt.Fprint(out, formatter.FormatPayorList(sums))
			return nil
		},
	}

	cmd.Flags().Int64Var(&bid, "bid", 0, "Only payors of this business (0 lists all)")

	return cmd
}

func newPayorAddCmd(app *App) *cobra.Command {
	var name, fund string
	var flags *batchFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a payor",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := flags.key()
			if err != nil {
				return err
			}
			amount, err := domain.ParseAmount(fund)
			if err != nil {
				return fmt.Errorf("invalid fund: %w", err)
			}

			p := &domain.Payor{BID: key.BID, TCID: key.TCID, Name: name, Fund: amount}
			if err := app.Payors.Create(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created payor %s [%s] with fund %s\n", p.Name, key, formatter.Money(p.Fund))
			return nil
		},
	}

	flags = addBatchFlags(cmd, app, true)
	cmd.Flags().StringVar(&name, "name", "", "Payor name")
	cmd.Flags().StringVar(&fund, "fund", "0", "Unallocated funds received from the payor")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPayorFundCmd(app *App) *cobra.Command {
	var flags *batchFlags

	cmd := &cobra.Command{
		Use:   "fund AMOUNT",
		Short: "Set the fund available for allocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := flags.key()
			if err != nil {
				return err
			}
			p, err := app.Payors.SetFund(cmd.Context(), key, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fund for %s [%s] is now %s\n", p.Name, key, formatter.Money(p.Fund))
			return nil
		},
	}

	flags = addBatchFlags(cmd, app, true)

	return cmd
}
