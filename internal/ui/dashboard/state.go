package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/noelruault/shepherd/internal/core"
	"github.com/noelruault/shepherd/internal/ui/shared"
)

// Page shows the metrics and triggers of one function.
type Page struct {
	actions  core.Dispatcher
	function *core.FunctionSummary
	metrics  []core.MetricSeries
	triggers []core.TriggerMapping
}

// New builds the page from state.
func New(state core.State, actions core.Dispatcher) Page {
	return Page{actions: actions}.WithState(state)
}

// WithState loads a copy of a DashboardState and clears the page for any
// other state.
func (p Page) WithState(state core.State) Page {
	st, ok := state.(core.DashboardState)
	if !ok {
		return Page{actions: p.actions}
	}
	own := core.NewDashboardState(st.Function, st.Metrics, st.Triggers)
	p.function = &own.Function
	p.metrics = own.Metrics
	p.triggers = own.Triggers
	return p
}

// HandleKey handles a key press.
func (p *Page) HandleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, shared.Keys.Quit):
		p.actions.Send(core.QuitAction{})
	case key.Matches(msg, shared.Keys.Search):
		p.actions.Send(core.SearchAction{})
	case key.Matches(msg, shared.Keys.OpenConsole):
		if p.function != nil {
			p.actions.Send(core.OpenConsoleAction{Function: *p.function})
		}
	}
}

// Name returns the page name.
func (p Page) Name() string {
	return "Dashboard"
}

// Function returns the function on display.
func (p Page) Function() (core.FunctionSummary, bool) {
	if p.function == nil {
		return core.FunctionSummary{}, false
	}
	return *p.function, true
}
