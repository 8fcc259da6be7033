package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/noelruault/shepherd/internal/core"
	"github.com/noelruault/shepherd/internal/ui/dashboard"
	"github.com/noelruault/shepherd/internal/ui/errorpage"
	"github.com/noelruault/shepherd/internal/ui/search"
	"github.com/noelruault/shepherd/internal/ui/splash"
)

// Page identifies the page the router shows.
type Page int

const (
	PageSplash Page = iota
	PageSearch
	PageDashboard
	PageError
)

// pageFor maps a state to the page that displays it.
func pageFor(state core.State) Page {
	switch state.(type) {
	case core.SearchState, core.SearchingState:
		return PageSearch
	case core.DashboardState:
		return PageDashboard
	case core.ErrorState:
		return PageError
	default:
		return PageSplash
	}
}

// Router holds every page and forwards input and rendering to the current one.
type Router struct {
	current   Page
	splash    splash.Page
	search    search.Page
	dashboard dashboard.Page
	errorPage errorpage.Page
}

// NewRouter builds all pages from state.
func NewRouter(state core.State, actions core.Dispatcher) Router {
	return Router{
		current:   pageFor(state),
		splash:    splash.New(state, actions),
		search:    search.New(state, actions),
		dashboard: dashboard.New(state, actions),
		errorPage: errorpage.New(state, actions),
	}
}

// WithState rebuilds every page from state and switches to the page that
// displays it.
func (r Router) WithState(state core.State) Router {
	return Router{
		current:   pageFor(state),
		splash:    r.splash.WithState(state),
		search:    r.search.WithState(state),
		dashboard: r.dashboard.WithState(state),
		errorPage: r.errorPage.WithState(state),
	}
}

// SetSize passes the page area size to the pages that scroll.
func (r *Router) SetSize(width, height int) {
	r.search.SetSize(width, height)
}

// Current returns the page on display.
func (r Router) Current() Page {
	return r.current
}

// HandleKey forwards a key press to the current page.
func (r *Router) HandleKey(msg tea.KeyMsg) {
	switch r.current {
	case PageSearch:
		r.search.HandleKey(msg)
	case PageDashboard:
		r.dashboard.HandleKey(msg)
	case PageError:
		r.errorPage.HandleKey(msg)
	default:
		r.splash.HandleKey(msg)
	}
}

// Name returns the name of the current page.
func (r Router) Name() string {
	switch r.current {
	case PageSearch:
		return r.search.Name()
	case PageDashboard:
		return r.dashboard.Name()
	case PageError:
		return r.errorPage.Name()
	default:
		return r.splash.Name()
	}
}

// View renders the current page.
func (r Router) View(width, height int) string {
	switch r.current {
	case PageSearch:
		return r.search.View(width, height)
	case PageDashboard:
		return r.dashboard.View(width, height)
	case PageError:
		return r.errorPage.View(width, height)
	default:
		return r.splash.View(width, height)
	}
}
