package splash

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/noelruault/shepherd/internal/ui/shared"
)

// View renders the splash screen.
func (p Page) View(width, height int) string {
	return shared.Splash(width, height, lipgloss.Color("255"), false,
		shared.TitleStyle.Render("SHEPHERD"),
		shared.MutedStyle.Render("[s] to search"),
		shared.MutedStyle.Render("[q] to quit"),
	)
}
