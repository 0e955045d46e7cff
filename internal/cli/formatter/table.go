package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableOption adjusts how RenderTable lays out a table.
type TableOption func(*tableConfig)

type tableConfig struct {
	right  map[int]bool
	footer []string
}

// AlignRight right-aligns the given columns, as used for amounts.
func AlignRight(cols ...int) TableOption {
	return func(c *tableConfig) {
		for _, col := range cols {
			c.right[col] = true
		}
	}
}

// WithFooter appends a summary row below a separator line.
func WithFooter(row []string) TableOption {
	return func(c *tableConfig) {
		c.footer = row
	}
}

// RenderTable renders an aligned table with a header separator line.
// Columns are padded to the widest visible cell, ANSI sequences excluded.
func RenderTable(headers []string, rows [][]string, opts ...TableOption) string {
	if len(headers) == 0 {
		return ""
	}
	cfg := tableConfig{right: map[int]bool{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	cols := len(headers)
	widths := make([]int, cols)
	measure := func(row []string) {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}
	measure(cfg.footer)

	const colGap = 2
	var b strings.Builder

	writeRow := func(row []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			if style != nil {
				cell = style(cell)
			}
			if cfg.right[i] {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if i < cols-1 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}
	writeRule := func() {
		for i, w := range widths {
			b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	writeRule()
	for _, row := range rows {
		writeRow(row, nil)
	}
	if cfg.footer != nil {
		writeRule()
		writeRow(cfg.footer, Bold)
	}
	return b.String()
}
