package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/noelruault/shepherd/internal/core"
	"github.com/noelruault/shepherd/internal/ui/shared"
)

const (
	defaultTickRate = 250 * time.Millisecond
	defaultWidth    = 80
	defaultHeight   = 24
)

// shutdownSignals end the session through the same path as a quit key.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}

// Options configures a session.
type Options struct {
	Actions  core.Dispatcher
	States   *core.Mailbox[core.State]
	Account  string
	Region   string
	TickRate time.Duration
	Logger   *slog.Logger
}

type (
	tickMsg         time.Time
	stateMsg        struct{ state core.State }
	interruptMsg    struct{ signal os.Signal }
	inputClosedMsg  struct{}
	statesClosedMsg struct{}
)

// Session is the root model of the terminal UI. It renders the router and
// terminates on an interrupt, the end of input or a QuitState.
type Session struct {
	ctx       context.Context
	opts      Options
	router    Router
	signals   <-chan os.Signal
	inputDone <-chan struct{}

	width       int
	height      int
	terminating bool
}

// NewSession builds a session starting on the splash page. signals and
// inputDone may be nil.
func NewSession(ctx context.Context, opts Options, signals <-chan os.Signal, inputDone <-chan struct{}) Session {
	if opts.TickRate <= 0 {
		opts.TickRate = defaultTickRate
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	s := Session{
		ctx:       ctx,
		opts:      opts,
		router:    NewRouter(core.SplashState{}, opts.Actions),
		signals:   signals,
		inputDone: inputDone,
	}
	s.resize()
	return s
}

// Run drives the terminal UI until the session terminates. The terminal is
// restored on every exit path.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, shutdownSignals...)
	defer signal.Stop(signals)

	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	}
	var inputDone <-chan struct{}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		in := newWatchedInput(os.Stdin)
		inputDone = in.Done()
		programOpts = append(programOpts, tea.WithInput(in))
	}

	session := NewSession(ctx, opts, signals, inputDone)
	if _, err := tea.NewProgram(session, programOpts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

// Init starts every event source.
func (s Session) Init() tea.Cmd {
	return tea.Batch(s.tick(), s.waitForState(), s.waitForInterrupt(), s.waitForInputClosed())
}

// Update handles one event. Each event source is re-armed after delivery.
func (s Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s.terminating {
		return s, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.resize()
		return s, nil

	case tickMsg:
		return s, s.tick()

	case stateMsg:
		if _, ok := msg.state.(core.QuitState); ok {
			s.opts.Logger.Debug("quit state received")
			return s.terminate(false)
		}
		s.router = s.router.WithState(msg.state)
		s.opts.Logger.Debug("state received", "page", s.router.Name())
		return s, s.waitForState()

	case statesClosedMsg:
		return s.terminate(false)

	case interruptMsg:
		s.opts.Logger.Info("interrupted", "signal", msg.signal)
		return s.terminate(true)

	case inputClosedMsg:
		s.opts.Logger.Info("input closed")
		return s.terminate(true)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			s.opts.Logger.Info("interrupted", "signal", "ctrl+c")
			return s.terminate(true)
		}
		s.router.HandleKey(msg)
		return s, nil
	}
	return s, nil
}

// terminate stops the program, telling the worker to quit when the session
// ends on its own.
func (s Session) terminate(notify bool) (tea.Model, tea.Cmd) {
	s.terminating = true
	if notify && s.opts.Actions != nil {
		s.opts.Actions.Send(core.QuitAction{})
	}
	return s, tea.Quit
}

// View renders the current page and the status bar. Nothing is drawn once
// the session is terminating.
func (s Session) View() string {
	if s.terminating {
		return ""
	}
	width, height := s.size()
	page := shared.FitHeight(s.router.View(width, height-1), height-1)
	return page + "\n" + s.statusBar(width)
}

// Terminating reports whether the session is shutting down.
func (s Session) Terminating() bool {
	return s.terminating
}

// Router returns the page router.
func (s Session) Router() Router {
	return s.router
}

// resize gives the router the area above the status bar.
func (s *Session) resize() {
	width, height := s.size()
	s.router.SetSize(width, height-1)
}

func (s Session) size() (int, int) {
	width, height := s.width, s.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 1 {
		height = defaultHeight
	}
	return width, height
}

func (s Session) statusBar(width int) string {
	account := s.opts.Account
	if account == "" {
		account = "unknown account"
	}
	left := shared.InfoBarStyle.Render("shepherd") + shared.InfoValueStyle.Render(s.router.Name())
	right := shared.InfoValueStyle.Render(account + " · " + s.opts.Region)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		return shared.Truncate(left+right, width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (s Session) tick() tea.Cmd {
	return tea.Tick(s.opts.TickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s Session) waitForState() tea.Cmd {
	if s.opts.States == nil {
		return nil
	}
	return func() tea.Msg {
		state, ok := s.opts.States.Receive(s.ctx)
		if !ok {
			return statesClosedMsg{}
		}
		return stateMsg{state: state}
	}
}

func (s Session) waitForInterrupt() tea.Cmd {
	if s.signals == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case sig := <-s.signals:
			return interruptMsg{signal: sig}
		case <-s.ctx.Done():
			return nil
		}
	}
}

func (s Session) waitForInputClosed() tea.Cmd {
	if s.inputDone == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-s.inputDone:
			return inputClosedMsg{}
		case <-s.ctx.Done():
			return nil
		}
	}
}
