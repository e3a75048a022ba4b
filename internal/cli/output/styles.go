package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Header3 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Name    lipgloss.Style
	Value   lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
	StatusRunning lipgloss.Style
	StatusSkipped lipgloss.Style
}

// Palette
var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD700"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#66BB6A"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#EF6C00", Dark: "#FFA726"}
	colorError   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF5350"}
	colorInfo    = lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#42A5F5"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9E9E9E"}
)

// newStyles builds styles bound to a lipgloss renderer. Without a TTY
// the renderer uses the Ascii profile so nothing emits escape codes.
func newStyles(lr *lipgloss.Renderer, isTTY bool) *Styles {
	if !isTTY || termenv.EnvNoColor() {
		lr.SetColorProfile(termenv.Ascii)
	} else {
		lr.SetColorProfile(termenv.ANSI256)
	}

	return &Styles{
		Header1: lr.NewStyle().Bold(true).Foreground(colorAccent),
		Header2: lr.NewStyle().Bold(true).Underline(true),
		Header3: lr.NewStyle().Bold(true),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(colorMuted),
		Name:    lr.NewStyle().Foreground(colorInfo),
		Value:   lr.NewStyle().Foreground(colorAccent),

		Success: lr.NewStyle().Foreground(colorSuccess),
		Warning: lr.NewStyle().Foreground(colorWarning),
		Error:   lr.NewStyle().Foreground(colorError).Bold(true),
		Info:    lr.NewStyle().Foreground(colorInfo),

		StatusSuccess: lr.NewStyle().Foreground(colorSuccess).SetString("✓"),
		StatusFailed:  lr.NewStyle().Foreground(colorError).SetString("✗"),
		StatusRunning: lr.NewStyle().Foreground(colorInfo).SetString("…"),
		StatusSkipped: lr.NewStyle().Foreground(colorMuted).SetString("-"),
	}
}
