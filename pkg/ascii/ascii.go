// Package ascii provides runewidth-aware helpers for terminal report output
package ascii

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Box builds a box containing the provided lines and returns it as a string.
// Lines are left-aligned with single-space padding on each side. Multi-width
// runes (emoji, CJK, etc.) are accounted for so the borders stay aligned.
func Box(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	trimmed := make([]string, len(lines))
	maxWidth := 0
	for i, line := range lines {
		trimmed[i] = strings.TrimRight(line, " ")
		if w := runewidth.StringWidth(trimmed[i]); w > maxWidth {
			maxWidth = w
		}
	}

	leftPadding, rightPadding := 1, 1
	innerWidth := maxWidth + leftPadding + rightPadding
	border := strings.Repeat("─", innerWidth)

	var sb strings.Builder
	sb.WriteString("┌" + border + "┐\n")
	for _, line := range trimmed {
		fill := innerWidth - leftPadding - rightPadding - runewidth.StringWidth(line)
		if fill < 0 {
			fill = 0
		}
		sb.WriteString("│ " + line + strings.Repeat(" ", fill) + " │\n")
	}
	sb.WriteString("└" + border + "┘\n")
	return sb.String()
}

// Align describes how a table cell is padded within its column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table renders rows into aligned columns separated by two spaces. The first
// row is treated as a header and underlined with dashes. Alignments apply
// per column; missing entries default to AlignLeft.
func Table(rows [][]string, aligns []Align) []string {
	if len(rows) == 0 {
		return nil
	}

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	widths := make([]int, cols)
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	alignFor := func(i int) Align {
		if i < len(aligns) {
			return aligns[i]
		}
		return AlignLeft
	}

	pad := func(cell string, width int, a Align) string {
		fill := width - runewidth.StringWidth(cell)
		if fill < 0 {
			fill = 0
		}
		if a == AlignRight {
			return strings.Repeat(" ", fill) + cell
		}
		return cell + strings.Repeat(" ", fill)
	}

	var out []string
	for r, row := range rows {
		cells := make([]string, cols)
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = pad(cell, widths[i], alignFor(i))
		}
		out = append(out, strings.TrimRight(strings.Join(cells, "  "), " "))
		if r == 0 {
			rule := make([]string, cols)
			for i := 0; i < cols; i++ {
				rule[i] = strings.Repeat("-", widths[i])
			}
			out = append(out, strings.TrimRight(strings.Join(rule, "  "), " "))
		}
	}
	return out
}

// Truncate shortens a string so its display width fits within width. An
// ellipsis ("...") is appended when truncation occurs and there is space
// for it.
func Truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return substringWithWidth(value, width)
	}
	return substringWithWidth(value, width-3) + "..."
}

func substringWithWidth(s string, target int) string {
	if target <= 0 {
		return ""
	}
	width := 0
	var sb strings.Builder
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if width+w > target {
			break
		}
		width += w
		sb.WriteRune(r)
	}
	return sb.String()
}
