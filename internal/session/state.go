// Package session holds the interactive session's single source of truth.
//
// One State exists per running session. Every read and write goes through
// its mutex; the lock is never held across network calls or sleeps.
// Background work reads its inputs out under the lock, runs unlocked, and
// commits its outputs back under the lock exactly once.
package session

import (
	"sync"

	"github.com/nameclaim/nameclaim/internal/core"
)

// Screen is the active view of the session.
type Screen int

const (
	ScreenSearch Screen = iota
	ScreenRegister
	ScreenSettings
)

// Next cycles Search -> Register -> Settings -> Search.
func (s Screen) Next() Screen {
	switch s {
	case ScreenSearch:
		return ScreenRegister
	case ScreenRegister:
		return ScreenSettings
	default:
		return ScreenSearch
	}
}

// Title returns the screen's display name.
func (s Screen) Title() string {
	switch s {
	case ScreenSearch:
		return "Search"
	case ScreenRegister:
		return "Register"
	default:
		return "Settings"
	}
}

// InputMode distinguishes text entry from navigation.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeEditing
)

// State is the session's mutable state. All methods are safe for concurrent
// use; the zero value is not usable, construct with New.
type State struct {
	mu sync.Mutex

	screen Screen
	mode   InputMode

	searchText     string
	results        []core.Outcome
	searchInFlight bool
	// searchGen tags each launched search; a commit whose generation is not
	// the latest is stale and discarded, so a slow old search can never
	// clobber a newer result set.
	searchGen uint64

	registerInFlight bool
	registerStatus   string

	selectedResult  int
	selectedSetting int

	helpVisible bool
	shouldQuit  bool

	selection core.Selection
}

// New creates the session state with its initial screen and mode.
func New(selection core.Selection) *State {
	return &State{
		screen:    ScreenSearch,
		mode:      ModeEditing,
		selection: selection,
	}
}

// Snapshot is a point-in-time copy of the state for rendering. Render from
// the snapshot, never from live fields.
type Snapshot struct {
	Screen           Screen
	Mode             InputMode
	SearchText       string
	Results          []core.Outcome
	SearchInFlight   bool
	RegisterInFlight bool
	RegisterStatus   string
	SelectedResult   int
	SelectedSetting  int
	HelpVisible      bool
	ShouldQuit       bool
	Selection        core.Selection
}

// Busy reports whether a search or registration is in flight.
func (s Snapshot) Busy() bool {
	return s.SearchInFlight || s.RegisterInFlight
}

// AvailableResults returns the subsequence of results with a positive
// verdict; SelectedResult indexes into this slice.
func (s Snapshot) AvailableResults() []core.Outcome {
	return availableResults(s.Results)
}

func availableResults(results []core.Outcome) []core.Outcome {
	out := make([]core.Outcome, 0, len(results))
	for _, r := range results {
		if r.Available == core.Available {
			out = append(out, r)
		}
	}
	return out
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]core.Outcome, len(s.results))
	copy(results, s.results)

	return Snapshot{
		Screen:           s.screen,
		Mode:             s.mode,
		SearchText:       s.searchText,
		Results:          results,
		SearchInFlight:   s.searchInFlight,
		RegisterInFlight: s.registerInFlight,
		RegisterStatus:   s.registerStatus,
		SelectedResult:   s.selectedResult,
		SelectedSetting:  s.selectedSetting,
		HelpVisible:      s.helpVisible,
		ShouldQuit:       s.shouldQuit,
		Selection:        s.selection,
	}
}

// AppendRune appends a typed character to the search text.
func (s *State) AppendRune(r rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchText += string(r)
}

// Backspace removes the last character of the search text.
func (s *State) Backspace() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.searchText) > 0 {
		runes := []rune(s.searchText)
		s.searchText = string(runes[:len(runes)-1])
	}
}

// SetSearchText replaces the search text wholesale.
func (s *State) SetSearchText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchText = text
}

// EnterEditing switches to text entry mode.
func (s *State) EnterEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeEditing
}

// CycleScreen advances Search -> Register -> Settings -> Search.
func (s *State) CycleScreen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = s.screen.Next()
}

// JumpTo switches directly to a screen.
func (s *State) JumpTo(screen Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = screen
}

// ToggleHelp flips the help overlay.
func (s *State) ToggleHelp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.helpVisible = !s.helpVisible
}

// RequestQuit asks the event loop to exit.
func (s *State) RequestQuit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shouldQuit = true
}

// Escape implements the layered escape behavior: close help if open, else
// leave editing mode, else request exit.
func (s *State) Escape() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.helpVisible:
		s.helpVisible = false
	case s.mode == ModeEditing:
		s.mode = ModeNormal
	default:
		s.shouldQuit = true
	}
}

// MoveResultSelection moves the register-screen cursor by delta, clamped to
// the available results.
func (s *State) MoveResultSelection(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := len(availableResults(s.results))
	if count == 0 {
		s.selectedResult = 0
		return
	}
	s.selectedResult = clamp(s.selectedResult+delta, 0, count-1)
}

// MoveSettingSelection moves the settings cursor by delta, clamped to the
// registry kind list.
func (s *State) MoveSettingSelection(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedSetting = clamp(s.selectedSetting+delta, 0, len(core.Kinds)-1)
}

// ToggleSelectedSetting flips the highlighted registry and returns the
// updated selection for the caller to persist.
func (s *State) ToggleSelectedSetting() core.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	kind := core.Kinds[s.selectedSetting]
	s.selection.Toggle(kind)
	return s.selection
}

// BeginSearch captures the inputs for a background search. It refuses to
// start when the text is empty or a search is already in flight, which is
// what prevents a second concurrent search against the same state. On
// success it flips the busy flag, leaves editing mode, and returns the
// generation tag the commit must present.
func (s *State) BeginSearch() (name string, sel core.Selection, gen uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.searchText == "" || s.searchInFlight {
		if s.mode == ModeEditing {
			s.mode = ModeNormal
		}
		return "", core.Selection{}, 0, false
	}

	s.searchInFlight = true
	s.searchGen++
	s.mode = ModeNormal
	return s.searchText, s.selection, s.searchGen, true
}

// CommitSearch installs a completed search's results and clears the busy
// flag. A stale generation is discarded wholesale. The result selection is
// clamped against the new available subsequence before the next render.
func (s *State) CommitSearch(gen uint64, results []core.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.searchGen {
		return
	}

	s.results = results
	s.searchInFlight = false

	count := len(availableResults(s.results))
	if count == 0 {
		s.selectedResult = 0
	} else {
		s.selectedResult = clamp(s.selectedResult, 0, count-1)
	}
}

// BeginRegister resolves the selected available outcome and marks a
// registration in flight. An invalid selection is a no-op that only sets a
// status message. The previous status is cleared by the new attempt.
func (s *State) BeginRegister() (core.Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registerInFlight {
		return core.Outcome{}, false
	}

	available := availableResults(s.results)
	if s.selectedResult >= len(available) {
		s.registerStatus = "No registry selected"
		return core.Outcome{}, false
	}

	outcome := available[s.selectedResult]
	if outcome.Available != core.Available {
		s.registerStatus = "Name not available"
		return core.Outcome{}, false
	}

	s.registerInFlight = true
	s.registerStatus = ""
	return outcome, true
}

// CommitRegister records the registration's terminal status and clears the
// busy flag.
func (s *State) CommitRegister(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registerStatus = status
	s.registerInFlight = false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
