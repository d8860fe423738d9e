package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/fibviz/internal/fib"
	"github.com/san-kum/fibviz/internal/viz"
)

const (
	listWidth  = 34
	barRows    = 12
	sideBySide = 90
	chromeRows = 14
	minRule    = 40
)

func (m Model) listRows() int {
	return max(m.height-chromeRows, 5)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewControls())
	b.WriteString("\n")
	b.WriteString(viz.Separator(max(m.width-2, minRule)))
	b.WriteString("\n\n")

	list := m.viewList()
	bars := m.viewBars()
	if m.width >= sideBySide {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", bars))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, list, bars))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m Model) viewHeader() string {
	title := viz.GradientText("Fibonacci Visualizer", viz.TitleStart, viz.TitleEnd)
	return "  " + lipgloss.NewStyle().Bold(true).Render(title) + "\n  " + viz.Subtle.Render("Explore the Golden Sequence")
}

func (m Model) viewControls() string {
	field := m.input.View()
	if !m.input.Focused() {
		field = viz.ValueText.Render(fmt.Sprintf("%-3d", m.state.Count))
	}
	terms := viz.PanelTitle.Render("Terms:") + " [" + field + "]" + viz.Hint.Render(fmt.Sprintf(" %d-%d", fib.MinTerms, fib.MaxTerms))

	status := viz.StatusStopped.Render("▶ Auto Play")
	if m.state.Playing {
		status = viz.StatusPlaying.Render("■ Stop")
	}

	sep := viz.Subtle.Render("│")
	return viz.Panel.Render(terms + "  " + sep + "  " + status + "  " + viz.Subtle.Render("↺ reset"))
}

func (m Model) viewList() string {
	seq := m.state.Sequence
	title := viz.PanelTitle.Render("Sequence")
	if fib.Truncated(m.state.Count, seq) {
		title += viz.Hint.Render(fmt.Sprintf("  capped at %d terms", len(seq)))
	}

	rows := m.listRows()
	body := viz.RenderList(seq, m.offset, rows, listWidth)
	if len(seq) > rows {
		body += "\n" + viz.Hint.Render(fmt.Sprintf("%d-%d of %d", m.offset, min(m.offset+rows, len(seq))-1, len(seq)))
	}
	return viz.Panel.Render(title + "\n\n" + body)
}

func (m Model) viewBars() string {
	seq := m.state.Sequence
	title := viz.PanelTitle.Render("Visualization (Scaled)")
	bars := viz.RenderBars(seq, barRows)

	shown := min(len(seq), viz.MaxBars)
	spark := viz.Sparkline(viz.LogValues(seq[:shown]), shown)
	return viz.Panel.Render(title + "\n\n" + bars + "\n\n" + spark + "  " + viz.Hint.Render("*Logarithmic Scale View"))
}
