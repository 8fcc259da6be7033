package core

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Provider resolves the data queries behind each Action.
type Provider interface {
	ListFunctions(ctx context.Context) ([]FunctionSummary, error)
	ListMetrics(ctx context.Context, fn FunctionSummary) ([]MetricSeries, error)
	ListTriggers(ctx context.Context, fn FunctionSummary) ([]TriggerMapping, error)
}

// Cache stores the last fetched function list.
type Cache interface {
	Read() ([]FunctionSummary, bool)
	Write(functions []FunctionSummary) error
	Clear() error
}

// ConsoleOpener opens a function in an external viewer.
type ConsoleOpener interface {
	OpenConsole(ctx context.Context, fn FunctionSummary) error
}

// StateManager turns Actions into States. It is the only writer of the
// State mailbox and the only reader of the Action mailbox.
type StateManager struct {
	provider Provider
	cache    Cache
	console  ConsoleOpener
	logger   *slog.Logger

	actions *Mailbox[Action]
	states  *Mailbox[State]
}

// Option configures a StateManager.
type Option func(*StateManager)

// WithConsole sets the handler for OpenConsoleAction.
func WithConsole(console ConsoleOpener) Option {
	return func(m *StateManager) { m.console = console }
}

// WithLogger sets the logger used for non-fatal failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *StateManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewStateManager wires a worker between the two mailboxes.
func NewStateManager(provider Provider, cache Cache, actions *Mailbox[Action], states *Mailbox[State], opts ...Option) *StateManager {
	m := &StateManager{
		provider: provider,
		cache:    cache,
		logger:   slog.New(slog.DiscardHandler),
		actions:  actions,
		states:   states,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run processes Actions one at a time, in arrival order, until a
// QuitAction is handled or ctx is done.
func (m *StateManager) Run(ctx context.Context) {
	for {
		action, ok := m.actions.Receive(ctx)
		if !ok {
			return
		}
		if !m.handle(ctx, action) {
			return
		}
	}
}

// handle resolves one action and reports whether the loop should continue.
func (m *StateManager) handle(ctx context.Context, action Action) (next bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("action panicked", "action", fmt.Sprintf("%T", action), "panic", r)
			m.emit(ErrorState{Message: fmt.Sprintf("internal error: %v", r)})
			next = true
		}
	}()

	switch a := action.(type) {
	case QuitAction:
		m.emit(QuitState{})
		return false
	case SearchAction:
		m.search(ctx)
	case RefreshAction:
		if err := m.cache.Clear(); err != nil {
			m.logger.Warn("clear function cache", "error", err)
		}
		m.search(ctx)
	case PerformSearchAction:
		m.performSearch(ctx, a.Function)
	case OpenConsoleAction:
		m.openConsole(ctx, a.Function)
	default:
		m.logger.Warn("unknown action", "action", fmt.Sprintf("%T", action))
	}
	return true
}

func (m *StateManager) search(ctx context.Context) {
	functions, err := m.listFunctions(ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.emit(NewSearchState(functions))
}

// listFunctions serves the cached list when present and refills the cache
// from the provider otherwise.
func (m *StateManager) listFunctions(ctx context.Context) ([]FunctionSummary, error) {
	if functions, ok := m.cache.Read(); ok {
		m.logger.Debug("function list served from cache", "count", len(functions))
		return functions, nil
	}

	functions, err := m.provider.ListFunctions(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.cache.Write(functions); err != nil {
		m.logger.Warn("write function cache", "error", err)
	}
	return functions, nil
}

// performSearch emits SearchingState, then fetches metrics and triggers
// concurrently. The first failure wins and no partial dashboard is emitted.
func (m *StateManager) performSearch(ctx context.Context, fn FunctionSummary) {
	m.emit(SearchingState{Function: fn})

	var (
		metrics  []MetricSeries
		triggers []TriggerMapping
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		metrics, err = m.provider.ListMetrics(gctx, fn)
		return err
	})
	g.Go(func() error {
		var err error
		triggers, err = m.provider.ListTriggers(gctx, fn)
		return err
	})
	if err := g.Wait(); err != nil {
		m.fail(err)
		return
	}

	m.emit(NewDashboardState(fn, metrics, triggers))
}

func (m *StateManager) openConsole(ctx context.Context, fn FunctionSummary) {
	if m.console == nil {
		return
	}
	if err := m.console.OpenConsole(ctx, fn); err != nil {
		m.fail(err)
	}
}

func (m *StateManager) fail(err error) {
	m.logger.Warn("action failed", "error", err)
	m.emit(ErrorState{Message: err.Error()})
}

func (m *StateManager) emit(st State) {
	m.states.Send(st)
}
