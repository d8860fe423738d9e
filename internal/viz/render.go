package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const barWidth = 3

// RenderBars draws the first MaxBars values as columns rows tall, scaled
// by BarHeights, with each bar's label on the row below.
func RenderBars(seq []int64, rows int) string {
	if rows < 1 {
		rows = 1
	}
	heights := BarHeights(seq)
	if len(heights) == 0 {
		return Subtle.Render("no terms")
	}

	filled := make([]int, len(heights))
	for i, h := range heights {
		filled[i] = max(1, int(math.Round(h/100*float64(rows))))
	}

	var b strings.Builder
	for r := rows; r >= 1; r-- {
		for i := range heights {
			cell := strings.Repeat(" ", barWidth)
			if filled[i] >= r {
				cell = lipgloss.NewStyle().Foreground(ColorAt(i)).Render(strings.Repeat("█", barWidth))
			}
			b.WriteString(cell)
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	for i := range heights {
		b.WriteString(IndexLabel.Render(fmt.Sprintf("%-*s", barWidth, BarLabel(seq[i]))))
		b.WriteString(" ")
	}
	return strings.TrimRight(b.String(), " ")
}

// RenderList draws (index, value) rows starting at offset, at most limit
// of them. A limit of zero or less shows everything after offset.
func RenderList(seq []int64, offset, limit, width int) string {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(seq) {
		return Subtle.Render("no terms")
	}
	end := len(seq)
	if limit > 0 {
		end = min(end, offset+limit)
	}

	inner := max(width-2, 16)
	lines := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		idx := IndexLabel.Render(fmt.Sprintf("n=%d", i))
		val := ValueText.Render(FormatValue(seq[i]))
		gap := max(1, inner-lipgloss.Width(idx)-lipgloss.Width(val))
		mark := lipgloss.NewStyle().Foreground(ColorAt(i)).Render("┃")
		lines = append(lines, mark+" "+idx+strings.Repeat(" ", gap)+val)
	}
	return strings.Join(lines, "\n")
}
