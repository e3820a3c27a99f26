package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestColorConstants(t *testing.T) {
	ansi := []lipgloss.Color{
		ColorSuccess, ColorError, ColorWarning, ColorInfo,
		ColorPrimary, ColorSecondary, ColorMuted,
	}
	for _, color := range ansi {
		assert.NotEmpty(t, string(color))
	}

	for _, color := range GradientColors {
		colorStr := string(color)
		assert.True(t, colorStr[0] == '#', "gradient color should be hex: %s", colorStr)
		assert.Len(t, colorStr, 7)
	}
}

func TestStylesRenderWithColorProfile(t *testing.T) {
	// Force a color profile so styles emit escape codes even when the
	// test runner isn't a TTY.
	lipgloss.SetColorProfile(termenv.ANSI256)
	defer lipgloss.SetColorProfile(termenv.Ascii)

	styles := map[string]lipgloss.Style{
		"success": SuccessStyle(),
		"error":   ErrorStyle(),
		"warning": WarningStyle(),
		"info":    InfoStyle(),
		"muted":   MutedStyle(),
	}
	for name, style := range styles {
		rendered := style.Render(name)
		assert.Contains(t, rendered, name)
	}
}

func TestDisableColors(t *testing.T) {
	assert.NotPanics(t, DisableColors)
	assert.Contains(t, SuccessStyle().Render("plain"), "plain")
}

func TestPrintWarning(t *testing.T) {
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	PrintWarning("share unreachable")

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	assert.Contains(t, buf.String(), "share unreachable")
	assert.Contains(t, buf.String(), SymbolWarning)
}

func TestSpinnerLifecycle(t *testing.T) {
	var mu bytes.Buffer
	s := NewSpinner("Browsing share")
	s.SetOutput(func(out string) { mu.WriteString(out) })

	assert.Equal(t, SpinnerPending, s.State())

	s.Start()
	assert.Equal(t, SpinnerInProgress, s.State())
	time.Sleep(130 * time.Millisecond)

	s.Success()
	assert.Equal(t, SpinnerSuccess, s.State())
	assert.Contains(t, mu.String(), "Browsing share")
	assert.Contains(t, mu.String(), SymbolComplete)
	assert.Greater(t, s.Elapsed(), time.Duration(0))
}

func TestSpinnerFail(t *testing.T) {
	var out strings.Builder
	s := NewSpinner("Cloning repos")
	s.SetOutput(func(line string) { out.WriteString(line) })

	s.Start()
	s.Fail()
	assert.Equal(t, SpinnerFailed, s.State())
	assert.Contains(t, out.String(), SymbolFail)
}

func TestSpinnerDoubleStartIsSafe(t *testing.T) {
	s := NewSpinner("x")
	s.SetOutput(func(string) {})
	s.Start()
	s.Start()
	s.Skip()
	assert.Equal(t, SpinnerSkipped, s.State())
}

func TestSpinnerComponentStates(t *testing.T) {
	c := NewSpinnerComponent("Installing keys")
	assert.Equal(t, SpinnerComponentPending, c.State)

	cmd := c.Start()
	assert.NotNil(t, cmd)
	assert.Equal(t, SpinnerComponentInProgress, c.State)
	assert.Contains(t, c.View(), "Installing keys...")

	c.Success()
	assert.Contains(t, c.View(), SymbolComplete)
	assert.Contains(t, c.ViewElapsed(1200*time.Millisecond), "1.2s")

	c.Fail()
	assert.Contains(t, c.View(), SymbolFail)

	c.Skip()
	assert.Contains(t, c.View(), SymbolSkipped)
}

func TestPhaseDisplay(t *testing.T) {
	var buf bytes.Buffer
	pd := NewPhaseDisplay(&buf)

	pd.RenderProgress("Testing identity")
	assert.Contains(t, buf.String(), "Testing identity...")

	buf.Reset()
	pd.RenderSuccess("Installed keys", 300*time.Millisecond)
	assert.Contains(t, buf.String(), "Installed keys")
	assert.Contains(t, buf.String(), "0.3s")

	buf.Reset()
	pd.RenderFailed("Share unreachable", 2*time.Second)
	assert.Contains(t, buf.String(), SymbolFail)

	buf.Reset()
	pd.RenderSkipped("Cloning repos", "no identity detected")
	assert.Contains(t, buf.String(), "(no identity detected)")

	buf.Reset()
	pd.RenderSubStatus(SymbolPending, "id_ed25519", "already present")
	assert.Contains(t, buf.String(), "id_ed25519")

	buf.Reset()
	pd.Divider()
	assert.Contains(t, buf.String(), "━")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0.05s", formatDuration(50*time.Millisecond))
	assert.Equal(t, "1.2s", formatDuration(1200*time.Millisecond))
}

func TestRenderSimpleTable(t *testing.T) {
	cols := []TableColumn{{Title: "NAME", Width: 20}, {Title: "TYPE", Width: 6}}
	rows := [][]string{
		{"id_ed25519", "file"},
		{"archive", "dir"},
	}

	out := RenderSimpleTable(cols, rows)
	assert.Contains(t, out, "id_ed25519")
	assert.Contains(t, out, "NAME")

	assert.Empty(t, RenderSimpleTable(cols, nil))
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader(HeaderInfo{Version: "v0.3.0", Tagline: "Workstation setup"})
	assert.Contains(t, out, "rig")
	assert.Contains(t, out, "v0.3.0")
	assert.Contains(t, out, "Workstation setup")
}

func TestRenderSetupSummary(t *testing.T) {
	out := RenderSetupSummary(SetupSummary{
		KeysInstalled: 2,
		KeysSkipped:   1,
		Account:       "octocat",
		ReposCloned:   []string{"octocat/dotfiles"},
		ReposFailed:   []string{"octocat/private"},
	})

	assert.Contains(t, out, "2 keys installed")
	assert.Contains(t, out, "1 key already present")
	assert.Contains(t, out, "authenticated as octocat")
	assert.Contains(t, out, "1 repo cloned")
	assert.Contains(t, out, "1 repo failed")
}

func TestRenderSetupSummary_Empty(t *testing.T) {
	assert.Contains(t, RenderSetupSummary(SetupSummary{}), "nothing to do")
}
