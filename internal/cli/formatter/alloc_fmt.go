package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/fundalloc/internal/allocator"
	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/shopspring/decimal"
)

// BatchView is what FormatBatch needs to render an allocation grid.
type BatchView struct {
	Batch       *domain.AllocationBatch
	Unallocated decimal.Decimal
	Violations  []allocator.Violation
}

// BatchHeaders are the column titles of the allocation grid.
var BatchHeaders = []string{"ROW", "ASSESSMENT", "DATE", "AMOUNT", "PAID", "OWED", "ALLOCATE", "PAY DATE"}

// BatchRows returns the table cells for each row of the batch, in display order.
func BatchRows(b *domain.AllocationBatch) [][]string {
	rows := make([][]string, 0, b.Len())
	for _, r := range b.Rows() {
		date := r.Date
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Assessment,
			Date(&date),
			Money(r.Amount),
			Money(r.AmountPaid),
			Money(r.AmountOwed),
			MoneyStyled(r.Allocate),
			Date(r.PaymentDate),
		})
	}
	return rows
}

// TotalsRow returns the summary cells matching BatchRows.
func TotalsRow(t allocator.Totals) []string {
	return []string{"", "Total", "", Money(t.Amount), Money(t.AmountPaid), Money(t.AmountOwed), Money(t.Allocate), ""}
}

// FormatBatch renders the unpaid assessments of a payor with a totals row,
// the fund and its unallocated remainder.
func FormatBatch(v BatchView) string {
	b := v.Batch
	var out strings.Builder

	title := fmt.Sprintf("%s  %s", Bold(b.PayorName), Dim(b.Key.String()))
	out.WriteString(title + "\n\n")

	if b.Len() == 0 {
		out.WriteString(Dim("No unpaid assessments.") + "\n")
	} else {
		out.WriteString(RenderTable(BatchHeaders, BatchRows(b),
			AlignRight(3, 4, 5, 6),
			WithFooter(TotalsRow(allocator.ComputeTotals(b))),
		))
	}

	out.WriteString("\n" + FundSummary(b.TotalFund, v.Unallocated))
	for _, viol := range v.Violations {
		out.WriteString(StyleRed.Render("! "+viol.Message) + "\n")
	}
	return out.String()
}

// FundSummary reports the fund, its unallocated remainder and a usage bar.
func FundSummary(fund, unallocated decimal.Decimal) string {
	line := fmt.Sprintf("Fund: %s   Unallocated: %s\n", Money(fund), MoneyStyled(unallocated))
	if bar := FundBar(fund.Sub(unallocated), fund, 20); bar != "" {
		line += "Allocated " + bar + "\n"
	}
	return line
}

// FormatResult describes one recompute for the operator.
func FormatResult(r allocator.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Row %d: %s → %s  %s\n", r.RowID, Money(r.Previous), MoneyStyled(r.Applied), ClampIndicator(r.Clamp))
	switch r.Clamp {
	case domain.ClampFunds:
		fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("requested %s, only %s of the fund remains (%s allocated elsewhere)",
			Money(r.Proposed), Money(r.FundsRemaining), Money(r.FundsAllocatedElsewhere))))
	case domain.ClampOwed:
		fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("requested %s, limited to the amount owed", Money(r.Proposed))))
	}
	return b.String()
}

// FormatHistory renders allocation events, newest first.
func FormatHistory(events []*domain.AllocationEvent) string {
	if len(events) == 0 {
		return Dim("No allocation history.") + "\n"
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			TruncID(e.ID),
			strconv.FormatInt(e.RowID, 10),
			Money(e.Proposed),
			Money(e.Previous),
			MoneyStyled(e.Applied),
			ClampIndicator(e.Clamp),
			HumanTimestamp(e.CreatedAt),
		})
	}
	return Header("Allocation history") + "\n" + RenderTable(
		[]string{"EVENT", "ROW", "PROPOSED", "PREVIOUS", "APPLIED", "CLAMP", "WHEN"},
		rows,
		AlignRight(2, 3, 4),
	)
}
