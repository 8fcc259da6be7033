package splash

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/noelruault/shepherd/internal/core"
	"github.com/noelruault/shepherd/internal/ui/shared"
)

// Page is the landing page.
type Page struct {
	actions core.Dispatcher
}

// New builds the page.
func New(_ core.State, actions core.Dispatcher) Page {
	return Page{actions: actions}
}

// WithState returns the page unchanged; the splash holds no data.
func (p Page) WithState(core.State) Page {
	return p
}

// HandleKey handles a key press.
func (p *Page) HandleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, shared.Keys.Quit):
		p.actions.Send(core.QuitAction{})
	case key.Matches(msg, shared.Keys.Search):
		p.actions.Send(core.SearchAction{})
	}
}

// Name returns the page name.
func (p Page) Name() string {
	return "Splash"
}
