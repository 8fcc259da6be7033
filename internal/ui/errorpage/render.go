package errorpage

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/noelruault/shepherd/internal/ui/shared"
)

var red = lipgloss.Color("1")

// View renders the error screen.
func (p Page) View(width, height int) string {
	message := p.message
	if message == "" {
		message = "shepherd encountered an unrecoverable error"
	}
	wrapped := lipgloss.NewStyle().
		Foreground(red).
		Width(max(width*2/3, 20)).
		Align(lipgloss.Center).
		Render(message)

	return shared.Splash(width, height, red, true,
		shared.ErrorStyle.Bold(true).Render("UH OH"),
		wrapped,
		"",
		shared.MutedStyle.Render("[s] to search"),
		shared.MutedStyle.Render("[q] to quit"),
	)
}
