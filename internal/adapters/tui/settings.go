package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/pomodoro-cli/internal/domain"
)

// durationField describes one editable duration in the settings dialog.
type durationField struct {
	label string
	phase domain.Phase
}

func (f durationField) current(cfg domain.SessionConfig) int {
	return cfg.PhaseMinutes(f.phase)
}

// settingsDialog edits the work and break durations.
type settingsDialog struct {
	active bool
	focus  int
	fields []durationField
	inputs []textinput.Model
}

func newSettingsDialog() settingsDialog {
	fields := []durationField{
		{label: "Work Duration", phase: domain.PhaseWork},
		{label: "Break Duration", phase: domain.PhaseBreak},
	}
	inputs := make([]textinput.Model, len(fields))
	for i := range inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 4
		in.Width = 6
		in.Placeholder = "min"
		inputs[i] = in
	}
	return settingsDialog{fields: fields, inputs: inputs}
}

// open fills the inputs from cfg and focuses the first one.
func (d *settingsDialog) open(cfg domain.SessionConfig) tea.Cmd {
	d.active = true
	d.focus = 0
	for i, f := range d.fields {
		d.inputs[i].SetValue(fmt.Sprint(f.current(cfg)))
		d.inputs[i].Blur()
	}
	return d.inputs[0].Focus()
}

func (d *settingsDialog) close() {
	d.active = false
	for i := range d.inputs {
		d.inputs[i].Blur()
	}
}

// move shifts focus to the next field, or the previous one when back is set.
func (d *settingsDialog) move(back bool) tea.Cmd {
	d.inputs[d.focus].Blur()
	step := 1
	if back {
		step = len(d.inputs) - 1
	}
	d.focus = (d.focus + step) % len(d.inputs)
	return d.inputs[d.focus].Focus()
}

func (d settingsDialog) update(msg tea.Msg) (settingsDialog, tea.Cmd) {
	var cmd tea.Cmd
	d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
	return d, cmd
}

func (d settingsDialog) view(p palette) string {
	rows := []string{p.heading.Render("Pomodoro Settings")}
	for i, f := range d.fields {
		label := p.muted.Render(fmt.Sprintf("%-15s", f.label))
		if i == d.focus {
			label = p.text.Render(fmt.Sprintf("%-15s", f.label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, d.inputs[i].View(), p.muted.Render(" min")))
	}
	rows = append(rows, p.muted.Render("tab next · enter save · esc close"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
