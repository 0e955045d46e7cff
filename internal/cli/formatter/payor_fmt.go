package formatter

import (
	"strconv"

	"github.com/alexanderramin/fundalloc/internal/repository"
)

// FormatPayorList renders payors with their fund, what they owe and what is
// still unallocated.
func FormatPayorList(sums []repository.PayorSummary) string {
	rows := make([][]string, 0, len(sums))
	for _, s := range sums {
		rows = append(rows, []string{
			strconv.FormatInt(s.Payor.BID, 10),
			strconv.FormatInt(s.Payor.TCID, 10),
			s.Payor.Name,
			Money(s.Payor.Fund),
			strconv.Itoa(s.UnpaidCount),
			Money(s.Owed),
			MoneyStyled(s.Unallocated()),
		})
	}
	return RenderTable(
		[]string{"BID", "TCID", "PAYOR", "FUND", "UNPAID", "OWED", "UNALLOCATED"},
		rows,
		AlignRight(3, 4, 5, 6),
	)
}
