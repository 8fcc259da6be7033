package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	LabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	ValueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	MutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	MatchStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	SelectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true)
	HeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Underline(true)
	HelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238"))
	InfoBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")).Bold(true).Padding(0, 1)
	InfoValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236")).Padding(0, 1)

	NormalBadgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Bold(true)
	InsertBadgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Bold(true)
	EnabledBadgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2"))
	DisabledBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("1"))

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8"))
)

// Box draws content in a rounded border with a title on the top edge. The
// result is exactly width x height cells.
func Box(title, content string, width, height int, color lipgloss.Color) string {
	if width < 4 || height < 2 {
		return ""
	}
	style := BoxStyle.BorderForeground(color)
	inner := lipgloss.NewStyle().Width(width - 2).Height(height - 2).MaxWidth(width - 2).MaxHeight(height - 2)
	box := style.Render(inner.Render(content))

	if title == "" {
		return box
	}
	border := lipgloss.RoundedBorder()
	label := Truncate(" "+title+" ", width-4)
	fill := width - 3 - lipgloss.Width(label)
	if fill < 0 {
		return box
	}
	top := lipgloss.NewStyle().Foreground(color).Render(border.TopLeft+border.Top) +
		TitleStyle.Render(label) +
		lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(border.Top, fill)+border.TopRight)

	lines := strings.Split(box, "\n")
	lines[0] = top
	return strings.Join(lines, "\n")
}
