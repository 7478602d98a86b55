package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nameclaim/nameclaim/internal/core"
)

func newState() *State {
	return New(core.DefaultSelection())
}

func TestNewStartsInSearchEditing(t *testing.T) {
	snap := newState().Snapshot()
	require.Equal(t, ScreenSearch, snap.Screen)
	require.Equal(t, ModeEditing, snap.Mode)
	require.False(t, snap.Busy())
}

func TestTextEntry(t *testing.T) {
	s := newState()
	s.AppendRune('a')
	s.AppendRune('b')
	s.Backspace()
	require.Equal(t, "a", s.Snapshot().SearchText)

	s.Backspace()
	s.Backspace() // empty text is a no-op
	require.Equal(t, "", s.Snapshot().SearchText)
}

func TestCycleScreen(t *testing.T) {
	s := newState()
	s.CycleScreen()
	require.Equal(t, ScreenRegister, s.Snapshot().Screen)
	s.CycleScreen()
	require.Equal(t, ScreenSettings, s.Snapshot().Screen)
	s.CycleScreen()
	require.Equal(t, ScreenSearch, s.Snapshot().Screen)
}

func TestEscapeLayering(t *testing.T) {
	s := newState()

	// Help closes first.
	s.ToggleHelp()
	s.Escape()
	snap := s.Snapshot()
	require.False(t, snap.HelpVisible)
	require.Equal(t, ModeEditing, snap.Mode)
	require.False(t, snap.ShouldQuit)

	// Then editing mode ends.
	s.Escape()
	snap = s.Snapshot()
	require.Equal(t, ModeNormal, snap.Mode)
	require.False(t, snap.ShouldQuit)

	// Then the session quits.
	s.Escape()
	require.True(t, s.Snapshot().ShouldQuit)
}

func TestBeginSearchRefusesEmptyText(t *testing.T) {
	s := newState()
	_, _, _, ok := s.BeginSearch()
	require.False(t, ok)
	require.Equal(t, ModeNormal, s.Snapshot().Mode)
	require.False(t, s.Snapshot().SearchInFlight)
}

func TestBeginSearchRefusesWhileInFlight(t *testing.T) {
	s := newState()
	s.SetSearchText("x")

	_, _, _, ok := s.BeginSearch()
	require.True(t, ok)

	_, _, _, ok = s.BeginSearch()
	require.False(t, ok)
}

func TestCommitSearchInstallsResults(t *testing.T) {
	s := newState()
	s.SetSearchText("x")
	_, _, gen, ok := s.BeginSearch()
	require.True(t, ok)

	results := []core.Outcome{
		{Registry: core.KindNPM, Name: "x", Available: core.Available},
		{Registry: core.KindCrates, Name: "x", Available: core.Taken},
	}
	s.CommitSearch(gen, results)

	snap := s.Snapshot()
	require.False(t, snap.SearchInFlight)
	require.Equal(t, results, snap.Results)
	require.Len(t, snap.AvailableResults(), 1)
}

func TestCommitSearchDiscardsStaleGeneration(t *testing.T) {
	s := newState()
	s.SetSearchText("first")
	_, _, oldGen, ok := s.BeginSearch()
	require.True(t, ok)

	// The second search supersedes the first before it commits.
	s.CommitSearch(oldGen, nil)
	s.SetSearchText("second")
	_, _, newGen, ok := s.BeginSearch()
	require.True(t, ok)

	stale := []core.Outcome{{Registry: core.KindNPM, Name: "first", Available: core.Available}}
	s.CommitSearch(oldGen, stale)

	snap := s.Snapshot()
	require.True(t, snap.SearchInFlight)
	require.Empty(t, snap.Results)

	fresh := []core.Outcome{{Registry: core.KindNPM, Name: "second", Available: core.Taken}}
	s.CommitSearch(newGen, fresh)
	require.Equal(t, fresh, s.Snapshot().Results)
}

func TestCommitSearchClampsSelection(t *testing.T) {
	s := newState()
	s.SetSearchText("x")
	_, _, gen, _ := s.BeginSearch()
	s.CommitSearch(gen, []core.Outcome{
		{Registry: core.KindNPM, Available: core.Available},
		{Registry: core.KindCrates, Available: core.Available},
		{Registry: core.KindPyPI, Available: core.Available},
	})
	s.MoveResultSelection(2)
	require.Equal(t, 2, s.Snapshot().SelectedResult)

	// A new result set with fewer available entries pulls the cursor back.
	s.SetSearchText("y")
	_, _, gen, _ = s.BeginSearch()
	s.CommitSearch(gen, []core.Outcome{{Registry: core.KindNPM, Available: core.Available}})
	require.Equal(t, 0, s.Snapshot().SelectedResult)
}

func TestMoveResultSelectionClamps(t *testing.T) {
	s := newState()
	s.SetSearchText("x")
	_, _, gen, _ := s.BeginSearch()
	s.CommitSearch(gen, []core.Outcome{
		{Registry: core.KindNPM, Available: core.Available},
		{Registry: core.KindCrates, Available: core.Available},
	})

	s.MoveResultSelection(-5)
	require.Equal(t, 0, s.Snapshot().SelectedResult)
	s.MoveResultSelection(9)
	require.Equal(t, 1, s.Snapshot().SelectedResult)
}

func TestMoveSettingSelectionClamps(t *testing.T) {
	s := newState()
	s.MoveSettingSelection(-3)
	require.Equal(t, 0, s.Snapshot().SelectedSetting)
	s.MoveSettingSelection(100)
	require.Equal(t, len(core.Kinds)-1, s.Snapshot().SelectedSetting)
}

func TestToggleSelectedSetting(t *testing.T) {
	s := newState()
	s.MoveSettingSelection(1) // crates

	sel := s.ToggleSelectedSetting()
	require.False(t, sel.Enabled(core.KindCrates))
	require.False(t, s.Snapshot().Selection.Enabled(core.KindCrates))

	sel = s.ToggleSelectedSetting()
	require.True(t, sel.Enabled(core.KindCrates))
}

func TestBeginRegisterWithNoResults(t *testing.T) {
	s := newState()
	_, ok := s.BeginRegister()
	require.False(t, ok)
	require.Equal(t, "No registry selected", s.Snapshot().RegisterStatus)
	require.False(t, s.Snapshot().RegisterInFlight)
}

func TestBeginRegisterSelectsAvailableOutcome(t *testing.T) {
	s := newState()
	s.SetSearchText("x")
	_, _, gen, _ := s.BeginSearch()
	s.CommitSearch(gen, []core.Outcome{
		{Registry: core.KindNPM, Name: "x", Available: core.Taken},
		{Registry: core.KindCrates, Name: "x", Available: core.Available},
	})

	outcome, ok := s.BeginRegister()
	require.True(t, ok)
	require.Equal(t, core.KindCrates, outcome.Registry)
	require.True(t, s.Snapshot().RegisterInFlight)

	// A second attempt while in flight is refused.
	_, ok = s.BeginRegister()
	require.False(t, ok)

	s.CommitRegister("Created: https://example.test/x")
	snap := s.Snapshot()
	require.False(t, snap.RegisterInFlight)
	require.Equal(t, "Created: https://example.test/x", snap.RegisterStatus)
}
