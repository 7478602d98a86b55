// Package tui runs the interactive session: a Bubble Tea event loop over the
// locked session state. Rendering happens on every update, and a short tick
// keeps results committed by background goroutines visible even when no key
// is pressed. Background work never runs inside the event loop; it is
// spawned, runs unlocked, and commits once.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nameclaim/nameclaim/internal/core"
	"github.com/nameclaim/nameclaim/internal/register"
	"github.com/nameclaim/nameclaim/internal/session"
)

// pollInterval bounds how long a background commit can stay invisible.
const pollInterval = 100 * time.Millisecond

// Aggregator fans a name out across the enabled registries.
type Aggregator interface {
	CheckAll(ctx context.Context, name string, sel core.Selection) []core.Outcome
}

// Registrar runs the registration workflow for one outcome.
type Registrar interface {
	Register(ctx context.Context, outcome core.Outcome, token string) register.Result
}

// SelectionSaver persists the registry selection.
type SelectionSaver interface {
	SaveSelection(sel core.Selection) error
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the Bubble Tea model for the session.
type Model struct {
	state     *session.State
	checks    Aggregator
	registrar Registrar
	saver     SelectionSaver
	token     func() string
	logger    *zap.Logger

	keys    keyMap
	spinner spinner.Model
	width   int
	height  int
}

// New builds the TUI model. token is called at the moment a registration is
// attempted; its result is never stored on the model.
func New(state *session.State, checks Aggregator, registrar Registrar, saver SelectionSaver, token func() string, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		state:     state,
		checks:    checks,
		registrar: registrar,
		saver:     saver,
		token:     token,
		logger:    logger,
		keys:      defaultKeyMap(),
		spinner:   sp,
	}
}

// Init starts the poll tick.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.state.Snapshot().ShouldQuit {
			return m, tea.Quit
		}
		return m, tick()

	case spinner.TickMsg:
		if !m.state.Snapshot().Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.state.Snapshot()
	editing := snap.Screen == session.ScreenSearch && snap.Mode == session.ModeEditing

	// Escape and quit stay live even while a background task runs.
	if key.Matches(msg, m.keys.Escape) {
		m.state.Escape()
		if m.state.Snapshot().ShouldQuit {
			return m, tea.Quit
		}
		return m, nil
	}

	if !editing {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.state.RequestQuit()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.state.ToggleHelp()
			return m, nil
		case key.Matches(msg, m.keys.NextScreen):
			m.state.CycleScreen()
			return m, nil
		case key.Matches(msg, m.keys.Search):
			m.state.JumpTo(session.ScreenSearch)
			return m, nil
		case key.Matches(msg, m.keys.Register):
			m.state.JumpTo(session.ScreenRegister)
			return m, nil
		case key.Matches(msg, m.keys.Settings):
			m.state.JumpTo(session.ScreenSettings)
			return m, nil
		}
	}

	// Busy flags gate everything screen-local so a second search or
	// registration cannot be launched against the same state.
	if snap.Busy() {
		return m, nil
	}

	switch snap.Screen {
	case session.ScreenSearch:
		return m.handleSearchKey(msg, snap)
	case session.ScreenRegister:
		return m.handleRegisterKey(msg)
	default:
		return m.handleSettingsKey(msg)
	}
}

func (m Model) handleSearchKey(msg tea.KeyMsg, snap session.Snapshot) (tea.Model, tea.Cmd) {
	if snap.Mode == session.ModeEditing {
		switch msg.Type {
		case tea.KeyEnter:
			return m, m.startSearch()
		case tea.KeyBackspace:
			m.state.Backspace()
			return m, nil
		case tea.KeyRunes, tea.KeySpace:
			for _, r := range msg.Runes {
				m.state.AppendRune(r)
			}
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Edit), msg.Type == tea.KeyEnter:
		m.state.EnterEditing()
	case key.Matches(msg, m.keys.Up):
		m.state.MoveResultSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.state.MoveResultSelection(1)
	}
	return m, nil
}

func (m Model) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.state.MoveResultSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.state.MoveResultSelection(1)
	case msg.Type == tea.KeyEnter:
		return m, m.startRegistration()
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.state.MoveSettingSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.state.MoveSettingSelection(1)
	case msg.Type == tea.KeyEnter, msg.Type == tea.KeySpace:
		sel := m.state.ToggleSelectedSetting()
		// Fire-and-forget persistence: the in-memory toggle always wins, a
		// failed write is logged and otherwise swallowed.
		go func() {
			if err := m.saver.SaveSelection(sel); err != nil {
				m.logger.Warn("saving registry selection failed", zap.Error(err))
			}
		}()
	}
	return m, nil
}

// startSearch hands the captured inputs to a detached goroutine. The
// goroutine holds no lock while probing and commits exactly once; a stale
// generation is discarded inside CommitSearch.
func (m Model) startSearch() tea.Cmd {
	name, sel, gen, ok := m.state.BeginSearch()
	if !ok {
		return nil
	}

	state, checks := m.state, m.checks
	go func() {
		results := checks.CheckAll(context.Background(), name, sel)
		state.CommitSearch(gen, results)
	}()

	return m.spinner.Tick
}

// startRegistration resolves the selected outcome and spawns the workflow.
// Any internal failure becomes a visible status string before the busy flag
// clears; nothing fails silently.
func (m Model) startRegistration() tea.Cmd {
	outcome, ok := m.state.BeginRegister()
	if !ok {
		return nil
	}

	token := m.token()
	state, registrar := m.state, m.registrar
	go func() {
		defer func() {
			if r := recover(); r != nil {
				state.CommitRegister(fmt.Sprintf("Error: %v", r))
			}
		}()

		result := registrar.Register(context.Background(), outcome, token)
		if result.OK {
			state.CommitRegister(result.Message)
		} else {
			state.CommitRegister("Error: " + result.Message)
		}
	}()

	return m.spinner.Tick
}
