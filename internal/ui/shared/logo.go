package shared

import "github.com/charmbracelet/lipgloss"

const (
	sheep = "        ,ww\n" +
		"  wWWWWWWW_)\n" +
		"  `WWWWWW'\n" +
		"   II  II"

	dazedSheep = "        ,ww\n" +
		"  wWWWWWWWx)\n" +
		"  `WWWWWW'\n" +
		"   II  II"
)

// Logo returns the sheep, with a dazed eye when dazed is set.
func Logo(dazed bool) string {
	if dazed {
		return dazedSheep
	}
	return sheep
}

// Splash stacks lines under the logo, centered in a width x height area.
func Splash(width, height int, color lipgloss.Color, dazed bool, lines ...string) string {
	block := append([]string{lipgloss.NewStyle().Foreground(color).Render(Logo(dazed)), ""}, lines...)
	content := lipgloss.JoinVertical(lipgloss.Center, block...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
