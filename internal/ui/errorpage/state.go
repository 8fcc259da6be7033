package errorpage

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/noelruault/shepherd/internal/core"
	"github.com/noelruault/shepherd/internal/ui/shared"
)

// Page shows the failure of the last operation.
type Page struct {
	actions core.Dispatcher
	message string
}

// New builds the page from state.
func New(state core.State, actions core.Dispatcher) Page {
	return Page{actions: actions}.WithState(state)
}

// WithState keeps the message of an ErrorState and clears it otherwise.
func (p Page) WithState(state core.State) Page {
	p.message = ""
	if st, ok := state.(core.ErrorState); ok {
		p.message = st.Message
	}
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
	return "Error"
}

// Message returns the error being shown.
func (p Page) Message() string {
	return p.message
}
