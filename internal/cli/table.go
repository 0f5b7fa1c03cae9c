package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(accentColor)

// Table renders rows as aligned columns. The first column is left aligned,
// the rest are right aligned.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends one row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render returns the table as text, one line per row, header first.
func (t *Table) Render() string {
	widths := make([]int, len(t.Headers))
	measure := func(cells []string) {
		for i, c := range cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}

	var sb strings.Builder
	if len(t.Headers) > 0 {
		writeRow(&sb, t.Headers, widths, &headerStyle)
	}
	for _, row := range t.Rows {
		writeRow(&sb, row, widths, nil)
	}

	return sb.String()
}

func writeRow(sb *strings.Builder, cells []string, widths []int, style *lipgloss.Style) {
	for i, c := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}

		pad := strings.Repeat(" ", widths[i]-lipgloss.Width(c))
		if style != nil {
			c = style.Render(c)
		}

		if i == 0 {
			sb.WriteString(c)
			if i < len(cells)-1 {
				sb.WriteString(pad)
			}
		} else {
			sb.WriteString(pad)
			sb.WriteString(c)
		}
	}

	sb.WriteString("\n")
}
