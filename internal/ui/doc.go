// Package ui provides terminal UI components for rig's CLI output.
//
// The package includes spinners, phase displays, tables, and styled text
// output using the Lip Gloss library for consistent terminal styling
// across all commands.
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Successful operations
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Warnings and skipped items
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - In-progress indicators
//
// Use DisableColors() to switch to monochrome output (for --no-color flag).
//
// The Spinner type provides an animated indicator for operations:
//
//	s := ui.NewSpinner("Browsing share")
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail() or s.Skip()
//
// PhaseDisplay renders setup progress with consistent formatting:
//
//	pd := ui.NewPhaseDisplay(os.Stdout)
//	pd.RenderProgress("Installing keys")
//	pd.RenderSuccess("Installed keys", elapsed)
//
// For TUI programs, SpinnerComponent wraps the Bubble Tea spinner for
// composition into larger models.
package ui
