package search

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/noelruault/shepherd/internal/core"
	"github.com/noelruault/shepherd/internal/ui/shared"
)

// Mode is the input mode of the search page.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
)

func (m Mode) String() string {
	if m == ModeInsert {
		return "INSERT"
	}
	return "NORMAL"
}

// Page filters the function list and opens a dashboard for the selection.
type Page struct {
	actions   core.Dispatcher
	functions []core.FunctionSummary
	matches   []Match
	index     int
	viewport  shared.Viewport
	mode      Mode
	input     textinput.Model
	pending   *core.FunctionSummary
}

// New builds the page from state.
func New(state core.State, actions core.Dispatcher) Page {
	p := Page{actions: actions, input: newInput()}
	return p.WithState(state)
}

func newInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "press i to type"
	ti.CharLimit = 128
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// WithState rebuilds the page. A SearchState keeps the query and the cursor
// (clamped to the new results), a SearchingState shows the pending function
// and any other state resets the page.
func (p Page) WithState(state core.State) Page {
	p.mode = ModeNormal
	p.input.Blur()
	p.pending = nil

	switch st := state.(type) {
	case core.SearchState:
		p.functions = core.CloneFunctions(st.Functions)
		p.refilter()
	case core.SearchingState:
		fn := st.Function
		p.pending = &fn
		p.functions = nil
		p.matches = nil
		p.index = 0
		p.viewport.Offset = 0
	default:
		p.functions = nil
		p.matches = nil
		p.index = 0
		p.viewport.Offset = 0
		p.input.Reset()
	}
	return p
}

// HandleKey handles a key press.
func (p *Page) HandleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, shared.Keys.Next):
		p.index = shared.ClampIndex(p.index+1, len(p.matches))
		p.scroll()
		return
	case key.Matches(msg, shared.Keys.Prev):
		p.index = shared.ClampIndex(p.index-1, len(p.matches))
		p.scroll()
		return
	case key.Matches(msg, shared.Keys.Select):
		if m, ok := p.Selected(); ok {
			p.actions.Send(core.PerformSearchAction{Function: m.Function})
		}
		return
	}

	if p.mode == ModeInsert {
		if key.Matches(msg, shared.Keys.Normal) {
			p.mode = ModeNormal
			p.input.Blur()
			return
		}
		p.input, _ = p.input.Update(msg)
		p.refilter()
		return
	}

	switch {
	case key.Matches(msg, shared.Keys.Quit):
		p.actions.Send(core.QuitAction{})
	case key.Matches(msg, shared.Keys.Insert):
		p.mode = ModeInsert
		p.input.Focus()
	case key.Matches(msg, shared.Keys.Refresh):
		p.actions.Send(core.RefreshAction{})
	}
}

// SetSize records the height the page is drawn at.
func (p *Page) SetSize(width, height int) {
	p.viewport.Height = visibleRows(height)
	p.scroll()
}

func (p *Page) refilter() {
	p.matches = Filter(p.functions, p.input.Value())
	p.index = shared.ClampIndex(p.index, len(p.matches))
	p.scroll()
}

// scroll moves the stored viewport only as far as needed to keep the
// cursor row visible.
func (p *Page) scroll() {
	if len(p.matches) == 0 {
		p.viewport.Offset = 0
		return
	}
	shared.EnsureVisible(p.index, len(p.matches), &p.viewport)
}

// Name returns the page name.
func (p Page) Name() string {
	return "Search"
}

// Mode returns the current input mode.
func (p Page) Mode() Mode {
	return p.mode
}

// Query returns the current query text.
func (p Page) Query() string {
	return p.input.Value()
}

// Matches returns the filtered list in display order.
func (p Page) Matches() []Match {
	return p.matches
}

// Offset returns the index of the first visible row.
func (p Page) Offset() int {
	return p.viewport.Offset
}

// Index returns the cursor position in Matches.
func (p Page) Index() int {
	return p.index
}

// Selected returns the match under the cursor.
func (p Page) Selected() (Match, bool) {
	if p.index < 0 || p.index >= len(p.matches) {
		return Match{}, false
	}
	return p.matches[p.index], true
}

// Pending returns the function being loaded, if any.
func (p Page) Pending() (core.FunctionSummary, bool) {
	if p.pending == nil {
		return core.FunctionSummary{}, false
	}
	return *p.pending, true
}
