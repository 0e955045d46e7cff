package formatter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// FundBar renders how much of a fund has been allocated, like [████░░░░] 45%.
// A fully spent fund is green, a partly spent one yellow and an
// over-allocated one red. It returns "" when there is no fund to measure.
func FundBar(allocated, fund decimal.Decimal, width int) string {
	if !fund.IsPositive() {
		return ""
	}
	if width < 2 {
		width = 2
	}

	pct := allocated.Div(fund).InexactFloat64()
	shown := min(max(pct, 0), 1)
	filled := int(shown * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleYellow
	switch {
	case pct > 1:
		style = StyleRed
	case pct == 1:
		style = StyleGreen
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
