package core

// Action is a request to move the application to a new State. Actions are
// produced by the UI and consumed by the StateManager.
type Action interface {
	isAction()
}

// QuitAction ends the session.
type QuitAction struct{}

// SearchAction requests the function list.
type SearchAction struct{}

// RefreshAction drops the cached function list and searches again.
type RefreshAction struct{}

// PerformSearchAction requests metrics and triggers for one function.
type PerformSearchAction struct {
	Function FunctionSummary
}

// OpenConsoleAction opens the function in the AWS web console.
type OpenConsoleAction struct {
	Function FunctionSummary
}

func (QuitAction) isAction()          {}
func (SearchAction) isAction()        {}
func (RefreshAction) isAction()       {}
func (PerformSearchAction) isAction() {}
func (OpenConsoleAction) isAction()   {}

// Dispatcher sends Actions to the StateManager without blocking.
type Dispatcher interface {
	Send(Action)
}
