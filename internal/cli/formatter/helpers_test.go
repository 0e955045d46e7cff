package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/fundalloc/internal/testutil"
	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences so assertions are terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"5", "5.00"},
		{"1250.5", "1,250.50"},
		{"1234567.89", "1,234,567.89"},
		{"-20", "-20.00"},
		{"0.01", "0.01"},
		{"-1234.5", "-1,234.50"},
		{"-0.004", "0.00"},
		{"123456789012345678.91", "123,456,789,012,345,678.91"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(testutil.Money(tt.in)))
		})
	}
}

func TestMoneyStyled_NegativeKeepsText(t *testing.T) {
	assert.Equal(t, "-20.00", stripANSI(MoneyStyled(testutil.Money("-20"))))
}

func TestDate(t *testing.T) {
	d := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-04", Date(&d))
	assert.Equal(t, "--", stripANSI(Date(nil)))
}

func TestHumanTimestamp(t *testing.T) {
	assert.Equal(t, "now", HumanTimestamp(time.Now()))
	assert.Equal(t, "2 hours ago", HumanTimestamp(time.Now().Add(-2*time.Hour-time.Minute)))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcdef12", stripANSI(TruncID("abcdef1234567890")))
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
}

func TestRenderBox_Title(t *testing.T) {
	out := stripANSI(RenderBox("fund", "body"))
	assert.Contains(t, out, "FUND")
	assert.Contains(t, out, "body")
	assert.Contains(t, out, "╭")
}
