package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/pomodoro-cli/internal/domain"
)

const (
	lightText  = "#F9FAFB"
	darkText   = "#111827"
	lightMuted = "#9CA3AF"
	darkMuted  = "#6B7280"
)

// palette is the set of styles derived from a theme and appearance.
type palette struct {
	card    lipgloss.Style
	heading lipgloss.Style
	clock   lipgloss.Style
	text    lipgloss.Style
	muted   lipgloss.Style
	button  lipgloss.Style
	notice  lipgloss.Style
	accent  lipgloss.Color
}

func newPalette(theme domain.Theme, dark bool) palette {
	bg := lipgloss.Color(theme.BackgroundFor(dark))
	fg := lipgloss.Color(darkText)
	muted := lipgloss.Color(darkMuted)
	if dark {
		fg = lipgloss.Color(lightText)
		muted = lipgloss.Color(lightMuted)
	}
	accent := lipgloss.Color(theme.Accent)

	base := lipgloss.NewStyle().Background(bg)
	return palette{
		card: base.
			Foreground(fg).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			BorderBackground(bg),
		heading: base.Bold(true).Foreground(fg),
		clock:   base.Foreground(fg),
		text:    base.Foreground(fg),
		muted:   base.Foreground(muted),
		button: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(lightText)).
			Background(accent).
			Padding(0, 1),
		notice: base.Italic(true).Foreground(accent),
		accent: accent,
	}
}

// progressBar builds a solid-fill bar in the theme accent.
func (p palette) progressBar(width int) progress.Model {
	bar := progress.New(
		progress.WithSolidFill(string(p.accent)),
		progress.WithoutPercentage(),
	)
	bar.Width = width
	return bar
}
