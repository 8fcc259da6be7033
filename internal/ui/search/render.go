package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/noelruault/shepherd/internal/ui/shared"
)

const (
	marker         = ">> "
	minRuntimeCol  = 7
	minMemoryCol   = 6
	footerHeight   = 2
	tableChrome    = 3 // borders and header
	columnSpacing  = 1
	minNameColumn  = 8
	loadingMessage = "loading metrics and triggers for %s..."
)

// View renders the results table, the query line and the help line.
func (p Page) View(width, height int) string {
	tableHeight := tableHeightFor(height)
	table := shared.Box("Results", p.renderRows(width-2, visibleRows(height)), width, tableHeight, lipgloss.Color("8"))

	return lipgloss.JoinVertical(lipgloss.Left,
		table,
		p.renderQueryLine(width),
		p.renderHelp(width),
	)
}

func tableHeightFor(height int) int {
	return max(height-footerHeight, tableChrome+1)
}

// visibleRows is the number of result rows shown at the given page height.
func visibleRows(height int) int {
	return max(tableHeightFor(height)-tableChrome, 1)
}

func (p Page) renderRows(width, rows int) string {
	if fn, ok := p.Pending(); ok {
		return shared.LabelStyle.Render(fmt.Sprintf(loadingMessage, fn.Name))
	}

	runtimeCol, memoryCol := minRuntimeCol, minMemoryCol
	for _, fn := range p.functions {
		runtimeCol = max(runtimeCol, len(fn.Runtime))
		memoryCol = max(memoryCol, len(fmt.Sprint(fn.MemorySize)))
	}
	nameCol := max(width-len(marker)-runtimeCol-memoryCol-2*columnSpacing, minNameColumn)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", len(marker)))
	b.WriteString(shared.HeaderStyle.Render(shared.PadRight("name", nameCol)))
	b.WriteString(" ")
	b.WriteString(shared.HeaderStyle.Render(shared.PadRight("runtime", runtimeCol)))
	b.WriteString(" ")
	b.WriteString(shared.HeaderStyle.Render(shared.PadRight("memory", memoryCol)))

	if len(p.matches) == 0 {
		b.WriteString("\n")
		if len(p.functions) == 0 {
			b.WriteString(shared.MutedStyle.Render("No functions loaded"))
		} else {
			b.WriteString(shared.MutedStyle.Render("No functions match your search"))
		}
		return b.String()
	}

	vp := p.viewport
	vp.Height = rows
	shared.EnsureVisible(p.index, len(p.matches), &vp)
	start, end := shared.GetVisibleRange(len(p.matches), vp)

	for i := start; i < end; i++ {
		m := p.matches[i]
		selected := i == p.index

		b.WriteString("\n")
		if selected {
			b.WriteString(shared.MatchStyle.Render(marker))
		} else {
			b.WriteString(strings.Repeat(" ", len(marker)))
		}
		b.WriteString(highlight(m.Function.Name, m.Positions, nameCol, selected))
		b.WriteString(" ")
		b.WriteString(shared.ValueStyle.Render(shared.PadRight(m.Function.Runtime, runtimeCol)))
		b.WriteString(" ")
		b.WriteString(shared.ValueStyle.Render(shared.PadRight(fmt.Sprint(m.Function.MemorySize), memoryCol)))
	}
	return b.String()
}

// highlight renders name in a column of the given width with the matched
// runes emphasised.
func highlight(name string, positions []int, width int, selected bool) string {
	base := shared.ValueStyle
	if selected {
		base = shared.SelectedStyle
	}
	runes := []rune(name)
	if ansi.StringWidth(name) > width {
		runes = []rune(ansi.Truncate(name, width, ""))
	}

	matched := make(map[int]bool, len(positions))
	for _, pos := range positions {
		matched[pos] = true
	}

	var b strings.Builder
	var run []rune
	runMatched := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		style := base
		if runMatched {
			style = shared.MatchStyle
			if selected {
				style = style.Background(shared.SelectedStyle.GetBackground())
			}
		}
		b.WriteString(style.Render(string(run)))
		run = run[:0]
	}
	for i, r := range runes {
		if matched[i] != runMatched {
			flush()
			runMatched = matched[i]
		}
		run = append(run, r)
	}
	flush()

	if gap := width - ansi.StringWidth(string(runes)); gap > 0 {
		b.WriteString(base.Render(strings.Repeat(" ", gap)))
	}
	return b.String()
}

func (p Page) renderQueryLine(width int) string {
	badge := shared.NormalBadgeStyle.Render(" " + p.mode.String() + " ")
	if p.mode == ModeInsert {
		badge = shared.InsertBadgeStyle.Render(" " + p.mode.String() + " ")
	}
	label := shared.LabelStyle.Render(" search: ")

	query := p.input.View()
	count := shared.MutedStyle.Render(fmt.Sprintf(" %d/%d", len(p.matches), len(p.functions)))
	line := badge + label + query
	if gap := width - lipgloss.Width(line) - lipgloss.Width(count); gap > 0 {
		line += strings.Repeat(" ", gap) + count
	}
	return shared.Truncate(line, width)
}

func (p Page) renderHelp(width int) string {
	k := shared.Keys
	var help string
	if p.mode == ModeInsert {
		help = shared.HelpLine(k.Normal, k.Select, k.Next, k.Prev)
	} else {
		help = shared.HelpLine(k.Quit, k.Insert, k.Refresh, k.Select, k.Next, k.Prev)
	}
	return shared.HelpStyle.Width(width).Render(shared.Truncate(help, width))
}
