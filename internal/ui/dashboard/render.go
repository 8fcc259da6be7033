package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/noelruault/shepherd/internal/core"
	"github.com/noelruault/shepherd/internal/ui/shared"
)

var (
	gray  = lipgloss.Color("8")
	green = lipgloss.Color("2")
	red   = lipgloss.Color("1")
)

// View renders the function header, the trigger table, the metric charts
// and the help line.
func (p Page) View(width, height int) string {
	fn, ok := p.Function()
	if !ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			shared.MutedStyle.Render("No function selected"))
	}

	header := p.renderHeader(fn, width)
	help := shared.HelpStyle.Width(width).Render(shared.Truncate(
		shared.HelpLine(shared.Keys.Quit, shared.Keys.Search, shared.Keys.OpenConsole), width))

	sections := []string{header}
	remaining := height - 2
	if len(p.triggers) > 0 {
		tableHeight := min(len(p.triggers)+3, max(remaining/2, 4))
		sections = append(sections, p.renderTriggers(width, tableHeight))
		remaining -= tableHeight
	}
	sections = append(sections, p.renderCharts(width, max(remaining, 0)), help)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p Page) renderHeader(fn core.FunctionSummary, width int) string {
	details := fmt.Sprintf(" %s  %d MB  %ds ", fn.Runtime, fn.MemorySize, fn.Timeout)
	name := shared.InfoBarStyle.Render(fn.Name)
	right := shared.InfoValueStyle.Render(details)
	gap := width - lipgloss.Width(name) - lipgloss.Width(right)
	if gap < 0 {
		return shared.Truncate(name+right, width)
	}
	return name + shared.InfoValueStyle.Padding(0).Render(strings.Repeat(" ", gap)) + right
}

func (p Page) renderTriggers(width, height int) string {
	typeCol, nameCol := len("Type"), len("Name")
	for _, t := range p.triggers {
		typeCol = max(typeCol, len(t.TypeLabel()))
		nameCol = max(nameCol, len(t.Name()))
	}
	const sizeCol, windowCol, stateCol = 10, 12, 10
	nameCol = max(min(nameCol, width-2-typeCol-sizeCol-windowCol-stateCol-4), 4)

	var b strings.Builder
	b.WriteString(shared.HeaderStyle.Render(shared.PadRight("Type", typeCol)) + " ")
	b.WriteString(shared.HeaderStyle.Render(shared.PadRight("Name", nameCol)) + " ")
	b.WriteString(shared.HeaderStyle.Render(shared.PadRight("Batch Size", sizeCol)) + " ")
	b.WriteString(shared.HeaderStyle.Render(shared.PadRight("Batch Window", windowCol)) + " ")
	b.WriteString(shared.HeaderStyle.Render(shared.PadRight("State", stateCol)))

	for _, t := range p.triggers {
		b.WriteString("\n")
		b.WriteString(shared.LabelStyle.Render(shared.PadRight(t.TypeLabel(), typeCol)) + " ")
		b.WriteString(shared.ValueStyle.Render(shared.PadRight(t.Name(), nameCol)) + " ")
		b.WriteString(shared.ValueStyle.Render(shared.PadRight(optional(t.BatchSize()), sizeCol)) + " ")
		b.WriteString(shared.ValueStyle.Render(shared.PadRight(optional(t.BatchWindow()), windowCol)) + " ")
		b.WriteString(stateBadge(t.State()))
	}
	return shared.Box("Triggers", b.String(), width, height, gray)
}

func optional(v int32, ok bool) string {
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

func stateBadge(s core.TriggerState) string {
	if s == core.TriggerEnabled {
		return shared.EnabledBadgeStyle.Render(" " + s.String() + " ")
	}
	return shared.DisabledBadgeStyle.Render(" " + s.String() + " ")
}

// renderCharts lays the series out column by column: with rows r per
// column, series i lands in column i/r, row i%r. Series that do not fit
// the grid are not drawn.
func (p Page) renderCharts(width, height int) string {
	if height <= 0 {
		return ""
	}
	if len(p.metrics) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			shared.MutedStyle.Render("No metrics"))
	}

	cols, rows := gridShape(len(p.metrics))
	columns := make([]string, 0, cols)
	for c := range cols {
		cellWidth := width / cols
		if c == cols-1 {
			cellWidth = width - cellWidth*(cols-1)
		}
		cells := make([]string, 0, rows)
		for r := range rows {
			cellHeight := height / rows
			if r == rows-1 {
				cellHeight = height - cellHeight*(rows-1)
			}
			i := c*rows + r
			if i >= len(p.metrics) {
				cells = append(cells, lipgloss.NewStyle().Width(cellWidth).Height(cellHeight).Render(""))
				continue
			}
			cells = append(cells, renderChart(p.metrics[i], cellWidth, cellHeight))
		}
		columns = append(columns, lipgloss.JoinVertical(lipgloss.Left, cells...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func renderChart(s core.MetricSeries, width, height int) string {
	color := green
	if s.Name == "errors" {
		color = red
	}
	title := s.Label + " · " + summary(s)
	innerWidth, innerHeight := width-2, height-2
	if innerWidth <= 0 || innerHeight <= 0 {
		return shared.Box(title, "", width, height, gray)
	}

	chartHeight := max(innerHeight-1, 1)
	body := lipgloss.NewStyle().Foreground(color).Render(sparkline(s.Values, innerWidth, chartHeight))
	if innerHeight > 1 {
		left, right := "-24h", "now"
		axis := left + strings.Repeat(" ", max(innerWidth-len(left)-len(right), 1)) + right
		body += "\n" + shared.MutedStyle.Render(shared.Truncate(axis, innerWidth))
	}
	return shared.Box(title, body, width, height, gray)
}
