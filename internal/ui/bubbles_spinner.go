package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames defines the animation frames (◐ ◓ ◑ ◒) for Bubble Tea
// programs, keeping CLI spinners and TUI components visually consistent.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10,
}

// SpinnerComponentState represents the state of a spinner in a Bubble Tea model.
type SpinnerComponentState int

const (
	SpinnerComponentPending SpinnerComponentState = iota
	SpinnerComponentInProgress
	SpinnerComponentSuccess
	SpinnerComponentFailed
	SpinnerComponentSkipped
)

// SpinnerComponent is a Bubble Tea model for embedding spinners in TUI
// programs. Unlike the standalone Spinner, this is designed to be
// composed into larger models like the bootstrap progress view.
type SpinnerComponent struct {
	spinner   spinner.Model
	Label     string
	State     SpinnerComponentState
	StartTime time.Time
}

// NewSpinnerComponent creates a new spinner component with the given label.
func NewSpinnerComponent(label string) SpinnerComponent {
	sp := spinner.New()
	sp.Spinner = SpinnerFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	return SpinnerComponent{
		spinner: sp,
		Label:   label,
		State:   SpinnerComponentPending,
	}
}

// Init returns the initial command for the spinner (tick).
func (s SpinnerComponent) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update handles spinner animation messages.
func (s SpinnerComponent) Update(msg tea.Msg) (SpinnerComponent, tea.Cmd) {
	if s.State != SpinnerComponentInProgress {
		return s, nil
	}

	if tickMsg, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(tickMsg)
		return s, cmd
	}
	return s, nil
}

// View renders the spinner in its current state.
func (s SpinnerComponent) View() string {
	if s.State == SpinnerComponentInProgress {
		return s.spinner.View() + " " + s.Label + "..."
	}
	return s.ViewElapsed(s.Elapsed())
}

// ViewElapsed renders the finished line with an explicit duration, for
// callers like PhaseDisplay that time phases themselves.
func (s SpinnerComponent) ViewElapsed(d time.Duration) string {
	switch s.State {
	case SpinnerComponentSuccess:
		return s.finalLine(SymbolComplete, ColorSuccess, d)
	case SpinnerComponentFailed:
		return s.finalLine(SymbolFail, ColorError, d)
	case SpinnerComponentSkipped:
		return s.finalLine(SymbolSkipped, ColorWarning, d)
	default:
		return s.finalLine(SymbolPending, ColorMuted, d)
	}
}

func (s SpinnerComponent) finalLine(symbol string, color lipgloss.Color, d time.Duration) string {
	symbolStyle := lipgloss.NewStyle().Foreground(color)
	timingStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	return symbolStyle.Render(symbol) + " " + s.Label + " " + timingStyle.Render(formatDuration(d))
}

// Start transitions the spinner to in-progress state.
func (s *SpinnerComponent) Start() tea.Cmd {
	s.State = SpinnerComponentInProgress
	s.StartTime = time.Now()
	return s.spinner.Tick
}

// Success transitions the spinner to success state.
func (s *SpinnerComponent) Success() {
	s.State = SpinnerComponentSuccess
}

// Fail transitions the spinner to failed state.
func (s *SpinnerComponent) Fail() {
	s.State = SpinnerComponentFailed
}

// Skip transitions the spinner to skipped state.
func (s *SpinnerComponent) Skip() {
	s.State = SpinnerComponentSkipped
}

// Elapsed returns the duration since the spinner started.
func (s SpinnerComponent) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return time.Since(s.StartTime)
}
