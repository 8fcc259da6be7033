package core

// State is the single snapshot of what the application shows. It is only
// produced by the StateManager and is never mutated once built.
type State interface {
	isState()
}

// SplashState is the initial, idle state.
type SplashState struct{}

// SearchState carries the function list to filter.
type SearchState struct {
	Functions []FunctionSummary
}

// SearchingState signals that details for Function are being fetched.
type SearchingState struct {
	Function FunctionSummary
}

// DashboardState holds everything fetched for one function.
type DashboardState struct {
	Function FunctionSummary
	Metrics  []MetricSeries
	Triggers []TriggerMapping
}

// ErrorState reports the failure of the last operation.
type ErrorState struct {
	Message string
}

// QuitState stops the session.
type QuitState struct{}

func (SplashState) isState()    {}
func (SearchState) isState()    {}
func (SearchingState) isState() {}
func (DashboardState) isState() {}
func (ErrorState) isState()     {}
func (QuitState) isState()      {}

// NewSearchState builds a SearchState owning its own copy of functions.
func NewSearchState(functions []FunctionSummary) SearchState {
	return SearchState{Functions: CloneFunctions(functions)}
}

// NewDashboardState builds a DashboardState owning copies of its slices.
func NewDashboardState(fn FunctionSummary, metrics []MetricSeries, triggers []TriggerMapping) DashboardState {
	st := DashboardState{Function: fn}
	if len(metrics) > 0 {
		st.Metrics = make([]MetricSeries, len(metrics))
		for i, m := range metrics {
			st.Metrics[i] = m.clone()
		}
	}
	if len(triggers) > 0 {
		st.Triggers = append([]TriggerMapping(nil), triggers...)
	}
	return st
}

// CloneFunctions returns an independent copy of functions.
func CloneFunctions(functions []FunctionSummary) []FunctionSummary {
	if len(functions) == 0 {
		return nil
	}
	dup := make([]FunctionSummary, len(functions))
	copy(dup, functions)
	return dup
}
