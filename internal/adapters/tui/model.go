// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/ports"
)

// maxBarWidth caps the progress bar on wide terminals.
const maxBarWidth = 48

// changedMsg signals that the controller published a new snapshot.
type changedMsg struct{}

// Model represents the TUI state.
type Model struct {
	control  ports.TimerControl
	changes  <-chan struct{}
	snap     domain.Snapshot
	title    string
	width    int
	height   int
	progress progress.Model
	settings settingsDialog
	notice   string
	quitting bool
}

// NewModel creates a new TUI model. changes delivers a signal whenever the
// controller state moves; the model pulls the snapshot itself.
func NewModel(control ports.TimerControl, changes <-chan struct{}) Model {
	snap := control.Snapshot()
	return Model{
		control:  control,
		changes:  changes,
		snap:     snap,
		title:    snap.Title(),
		progress: progress.New(progress.WithoutPercentage()),
		settings: newSettingsDialog(),
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(m.title), waitForChange(m.changes))
}

// waitForChange blocks until the next change signal.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return changedMsg{}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(min(msg.Width-8, maxBarWidth), 10)
		return m, nil

	case changedMsg:
		var cmd tea.Cmd
		m, cmd = m.sync()
		return m, tea.Batch(cmd, waitForChange(m.changes))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.settings.active {
			return m.updateSettings(msg)
		}
		return m.handleKey(msg)
	}

	if m.settings.active {
		var cmd tea.Cmd
		m.settings, cmd = m.settings.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "q":
		return m.quit()
	case " ", "space", "p":
		m.control.Toggle()
	case "r":
		m.control.Reset()
	case "s":
		m.control.SwitchPhase()
	case "t":
		m.control.CycleTheme()
	case "a", "d":
		m.control.ToggleAppearance()
	case "e":
		cmd := m.settings.open(m.snap.Config)
		return m, cmd
	default:
		return m, nil
	}
	return m.sync()
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.settings.close()
		return m, nil
	case "tab", "down", "shift+tab", "up":
		m = m.commitField(m.settings.focus)
		back := msg.String() == "shift+tab" || msg.String() == "up"
		focus := m.settings.move(back)
		var title tea.Cmd
		m, title = m.sync()
		return m, tea.Batch(focus, title)
	case "enter":
		m.notice = ""
		for i := range m.settings.inputs {
			m = m.commitField(i)
		}
		if m.notice == "" {
			m.settings.close()
		}
		return m.sync()
	}

	var cmd tea.Cmd
	m.settings, cmd = m.settings.update(msg)
	return m, cmd
}

// commitField applies field i when its text differs from the stored value.
// Rejected text is restored to the current value.
func (m Model) commitField(i int) Model {
	f := m.settings.fields[i]
	text := strings.TrimSpace(m.settings.inputs[i].Value())
	current := f.current(m.snap.Config)
	if text == fmt.Sprint(current) {
		return m
	}

	var ok bool
	switch f.phase {
	case domain.PhaseWork:
		ok = m.control.EditWorkDuration(text)
	case domain.PhaseBreak:
		ok = m.control.EditBreakDuration(text)
	}
	if !ok {
		m.notice = "Durations must be whole minutes from 1 to 1440"
		m.settings.inputs[i].SetValue(fmt.Sprint(current))
		return m
	}
	m.snap = m.control.Snapshot()
	return m
}

// sync pulls the latest snapshot and emits a title update when it changed.
func (m Model) sync() (Model, tea.Cmd) {
	snap := m.control.Snapshot()
	if snap.Version < m.snap.Version {
		return m, nil
	}
	m.snap = snap
	if title := snap.Title(); title != m.title {
		m.title = title
		return m, tea.SetWindowTitle(title)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Sequence(tea.SetWindowTitle(domain.NeutralTitle), tea.Quit)
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	snap := m.snap
	p := newPalette(snap.Theme(), snap.Config.DarkMode)

	var sections []string
	sections = append(sections, p.heading.Render(snap.Timer.Phase.Heading()))
	sections = append(sections, "")
	sections = append(sections, renderClock(snap.Clock(), p.clock, m.width))
	sections = append(sections, "")

	bar := p.progressBar(m.progress.Width)
	sections = append(sections, bar.ViewAs(snap.Progress()))
	sections = append(sections, "")

	toggle := "Start"
	if snap.Timer.Running {
		toggle = "Pause"
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		p.button.Render("␣ "+toggle),
		p.text.Render("  "),
		p.muted.Render("[r] Reset"),
		p.text.Render("  "),
		p.muted.Render("[s] "+snap.Timer.Phase.SwitchLabel()),
	)
	sections = append(sections, buttons)
	sections = append(sections, "")

	sections = append(sections, p.text.Render(fmt.Sprintf("Pomodoros Completed: %d", snap.Stats.PomodorosCompleted)))
	sections = append(sections, p.text.Render(fmt.Sprintf("Total Focused Time: %d minutes", snap.Stats.TotalFocusedMinutes)))

	if m.settings.active {
		sections = append(sections, "")
		sections = append(sections, m.settings.view(p))
	}

	if m.notice != "" {
		sections = append(sections, "")
		sections = append(sections, p.notice.Render(m.notice))
	}

	appearance := "Light Mode"
	if !snap.Config.DarkMode {
		appearance = "Dark Mode"
	}
	help := fmt.Sprintf("[e] Settings  [t] Theme: %s  [a] %s  [q] Quit", snap.Theme().Name, appearance)
	sections = append(sections, "")
	sections = append(sections, p.muted.Render(help))

	card := p.card.Render(lipgloss.JoinVertical(lipgloss.Center, sections...))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(snap.Theme().BackgroundFor(snap.Config.DarkMode))))
}
