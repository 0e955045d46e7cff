package cli

import (
	"fmt"

	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/spf13/cobra"
)

// batchFlags binds --bid and --tcid on a command.
type batchFlags struct {
	bid  int64
	tcid int64
}

func addBatchFlags(cmd *cobra.Command, app *App, requireTCID bool) *batchFlags {
	f := &batchFlags{}
	cmd.Flags().Int64Var(&f.bid, "bid", app.DefaultBID, "Business ID")
	cmd.Flags().Int64Var(&f.tcid, "tcid", 0, "Payor (transactant) ID")
	if requireTCID {
		_ = cmd.MarkFlagRequired("tcid")
	}
	return f
}

func (f *batchFlags) key() (domain.BatchKey, error) {
	if f.bid <= 0 {
		return domain.BatchKey{}, fmt.Errorf("--bid must be positive")
	}
	if f.tcid <= 0 {
		return domain.BatchKey{}, fmt.Errorf("--tcid must be positive")
	}
	return domain.BatchKey{BID: f.bid, TCID: f.tcid}, nil
}
