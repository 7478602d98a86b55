package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nameclaim/nameclaim/internal/core"
	"github.com/nameclaim/nameclaim/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1).
			Underline(true)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	editingInputStyle = inputStyle.
				BorderForeground(lipgloss.Color("205"))

	availableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	takenStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	unknownStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	spinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 2)
)

// View renders the whole frame from a snapshot so a background commit between
// reads cannot tear the output.
func (m Model) View() string {
	snap := m.state.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderTabs(snap.Screen))
	b.WriteString("\n\n")

	switch snap.Screen {
	case session.ScreenSearch:
		b.WriteString(m.renderSearch(snap))
	case session.ScreenRegister:
		b.WriteString(m.renderRegister(snap))
	default:
		b.WriteString(m.renderSettings(snap))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter(snap))

	if snap.HelpVisible {
		return b.String() + "\n\n" + m.renderHelp()
	}
	return b.String()
}

func (m Model) renderTabs(active session.Screen) string {
	screens := []session.Screen{session.ScreenSearch, session.ScreenRegister, session.ScreenSettings}
	tabs := make([]string, 0, len(screens)+1)
	tabs = append(tabs, titleStyle.Render("nameclaim"))
	for i, s := range screens {
		label := fmt.Sprintf("%d %s", i+1, s.Title())
		if s == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderSearch(snap session.Snapshot) string {
	var b strings.Builder

	input := snap.SearchText
	style := inputStyle
	if snap.Mode == session.ModeEditing {
		input += "█"
		style = editingInputStyle
	}
	b.WriteString(style.Render("Name: " + input))
	b.WriteString("\n\n")

	if snap.SearchInFlight {
		b.WriteString(m.spinner.View() + " Checking registries...\n")
		return b.String()
	}

	if len(snap.Results) == 0 {
		b.WriteString(dimStyle.Render("Type a name and press Enter to check availability.") + "\n")
		return b.String()
	}

	for _, r := range snap.Results {
		b.WriteString(renderOutcome(r))
		b.WriteString("\n")
	}
	return b.String()
}

func renderOutcome(r core.Outcome) string {
	var glyph, verdict string
	switch r.Available {
	case core.Available:
		glyph = availableStyle.Render("✓")
		verdict = availableStyle.Render("available")
	case core.Taken:
		glyph = takenStyle.Render("✗")
		verdict = takenStyle.Render("taken")
	default:
		glyph = unknownStyle.Render("?")
		verdict = unknownStyle.Render("unknown")
	}

	line := fmt.Sprintf("  %s %-12s %s", glyph, r.Registry.Label(), verdict)
	if r.Err != "" {
		line += dimStyle.Render("  (" + r.Err + ")")
	}
	return line
}

func (m Model) renderRegister(snap session.Snapshot) string {
	var b strings.Builder

	if snap.RegisterInFlight {
		b.WriteString(m.spinner.View() + " Registering...\n")
		return b.String()
	}

	available := snap.AvailableResults()
	if len(available) == 0 {
		b.WriteString(dimStyle.Render("No available names. Run a search first.") + "\n")
	} else {
		b.WriteString("Available names:\n\n")
		for i, r := range available {
			cursor := "  "
			line := fmt.Sprintf("%-12s %s", r.Registry.Label(), r.Name)
			if i == snap.SelectedResult {
				cursor = cursorStyle.Render("▸ ")
				line = cursorStyle.Render(line)
			}
			b.WriteString("  " + cursor + line + "\n")
		}
	}

	if snap.RegisterStatus != "" {
		b.WriteString("\n")
		if strings.HasPrefix(snap.RegisterStatus, "Error:") {
			b.WriteString(statusErrStyle.Render(snap.RegisterStatus))
		} else {
			b.WriteString(statusOKStyle.Render(snap.RegisterStatus))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSettings(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString("Registries to check:\n\n")

	for i, kind := range core.Kinds {
		box := "[ ]"
		if snap.Selection.Enabled(kind) {
			box = availableStyle.Render("[x]")
		}
		cursor := "  "
		label := kind.Label()
		if i == snap.SelectedSetting {
			cursor = cursorStyle.Render("▸ ")
			label = cursorStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("  %s%s %s\n", cursor, box, label))
	}
	return b.String()
}

func (m Model) renderFooter(snap session.Snapshot) string {
	var hints []string
	switch {
	case snap.Screen == session.ScreenSearch && snap.Mode == session.ModeEditing:
		hints = []string{"enter search", "esc stop editing"}
	case snap.Screen == session.ScreenSearch:
		hints = []string{"i edit", "↑/↓ move", "tab next", "? help", "q quit"}
	case snap.Screen == session.ScreenRegister:
		hints = []string{"↑/↓ move", "enter register", "tab next", "q quit"}
	default:
		hints = []string{"↑/↓ move", "enter toggle", "tab next", "q quit"}
	}
	return dimStyle.Render(strings.Join(hints, " · "))
}

func (m Model) renderHelp() string {
	rows := []string{
		"1/2/3      jump to screen",
		"tab        next screen",
		"i, e       edit search text",
		"enter      search / register / toggle",
		"↑/↓, k/j   move selection",
		"?          toggle this help",
		"esc        close help, stop editing, or quit",
		"q          quit",
	}
	return helpBoxStyle.Render(strings.Join(rows, "\n"))
}
