package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DividerWidth is the default width for divider lines.
const DividerWidth = 64

// PhaseDisplay renders setup phase status (tools, keys, identity, clone)
// to an output writer. Each line goes through a SpinnerComponent so the
// phase output matches spinners embedded in TUI programs.
type PhaseDisplay struct {
	w       io.Writer
	current SpinnerComponent
}

// NewPhaseDisplay creates a new phase display writing to w.
func NewPhaseDisplay(w io.Writer) *PhaseDisplay {
	return &PhaseDisplay{w: w}
}

// RenderProgress renders a phase in progress.
// Shows: ◐ Browsing share...
func (pd *PhaseDisplay) RenderProgress(name string) {
	pd.current = NewSpinnerComponent(name)
	pd.current.Start()
	fmt.Fprint(pd.w, "\r"+pd.current.View())
}

// RenderSuccess renders a completed phase.
// Shows: ● Installed keys (0.3s)
func (pd *PhaseDisplay) RenderSuccess(name string, duration time.Duration) {
	pd.clearLine()
	pd.current.Label = name
	pd.current.Success()
	fmt.Fprintln(pd.w, pd.current.ViewElapsed(duration))
}

// RenderFailed renders a failed phase.
// Shows: ✗ Share unreachable (2.3s)
func (pd *PhaseDisplay) RenderFailed(name string, duration time.Duration) {
	pd.clearLine()
	pd.current.Label = name
	pd.current.Fail()
	fmt.Fprintln(pd.w, pd.current.ViewElapsed(duration))
}

// RenderSkipped renders a skipped phase.
// Shows: ⊘ Cloning repos (no identity detected)
func (pd *PhaseDisplay) RenderSkipped(name string, reason string) {
	pd.clearLine()

	symbolStyle := lipgloss.NewStyle().Foreground(ColorWarning)
	reasonStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	if reason != "" {
		fmt.Fprintf(pd.w, "%s %s %s\n",
			symbolStyle.Render(SymbolSkipped),
			name,
			reasonStyle.Render("("+reason+")"),
		)
		return
	}
	fmt.Fprintf(pd.w, "%s %s\n", symbolStyle.Render(SymbolSkipped), name)
}

// RenderSubStatus renders an indented sub-status line.
// Shows:   ○ id_ed25519                    skipped (already present)
func (pd *PhaseDisplay) RenderSubStatus(symbol string, name string, status string) {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	fmt.Fprintf(pd.w, "  %s %s %s\n",
		style.Render(symbol),
		name,
		style.Render(status),
	)
}

// Divider renders a horizontal line to separate phases.
func (pd *PhaseDisplay) Divider() {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	fmt.Fprintf(pd.w, "\n%s\n\n", style.Render(strings.Repeat("━", DividerWidth)))
}

// Newline writes an empty line.
func (pd *PhaseDisplay) Newline() {
	fmt.Fprintln(pd.w)
}

// clearLine clears the current line for overwriting spinner output.
func (pd *PhaseDisplay) clearLine() {
	fmt.Fprint(pd.w, "\r"+strings.Repeat(" ", 80)+"\r")
}
