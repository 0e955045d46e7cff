package formatter

import (
	"math/big"
	"strings"
	"time"

	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Money renders an amount with thousands separators and two decimals,
// e.g. "1,250.50" or "-20.00". Digits come from the decimal itself, so
// large amounts keep their cents.
func Money(d decimal.Decimal) string {
	s := domain.RoundCents(d).StringFixed(domain.CentPlaces)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, cents, _ := strings.Cut(s, ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return sign + s
	}
	return sign + humanize.BigComma(n) + "." + cents
}

// MoneyStyled renders Money with negative amounts in red.
func MoneyStyled(d decimal.Decimal) string {
	if d.IsNegative() {
		return StyleRed.Render(Money(d))
	}
	return Money(d)
}

// Date renders a calendar date, or a dim dash when unset.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return StyleDim.Render("--")
	}
	return t.Format(dateLayout)
}

// HumanTimestamp returns a relative timestamp such as "3 minutes ago".
func HumanTimestamp(t time.Time) string {
	return humanize.Time(t)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
