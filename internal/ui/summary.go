package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rig/internal/util"
)

// SetupSummary holds the outcome of a full setup run for final display.
type SetupSummary struct {
	KeysInstalled int
	KeysSkipped   int
	KeysFailed    int
	Account       string
	ReposCloned   []string
	ReposUpdated  []string
	ReposFailed   []string
}

// RenderSetupSummary formats the end-of-run summary.
func RenderSetupSummary(s SetupSummary) string {
	successStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ColorError)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var sb strings.Builder

	if n := s.KeysInstalled; n > 0 {
		sb.WriteString(successStyle.Render(fmt.Sprintf("%s %d %s installed", SymbolSuccess, n, util.Pluralize(n, "key", "keys"))))
		sb.WriteString("\n")
	}
	if n := s.KeysSkipped; n > 0 {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("%s %d %s already present", SymbolSkipped, n, util.Pluralize(n, "key", "keys"))))
		sb.WriteString("\n")
	}
	if n := s.KeysFailed; n > 0 {
		sb.WriteString(errorStyle.Render(fmt.Sprintf("%s %d %s failed", SymbolFail, n, util.Pluralize(n, "key", "keys"))))
		sb.WriteString("\n")
	}

	if s.Account != "" {
		sb.WriteString(successStyle.Render(fmt.Sprintf("%s authenticated as %s", SymbolSuccess, s.Account)))
		sb.WriteString("\n")
	}

	if n := len(s.ReposCloned); n > 0 {
		sb.WriteString(successStyle.Render(fmt.Sprintf("%s %d %s cloned", SymbolSuccess, n, util.Pluralize(n, "repo", "repos"))))
		sb.WriteString("\n")
	}
	if n := len(s.ReposUpdated); n > 0 {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("%s %d %s updated", SymbolComplete, n, util.Pluralize(n, "repo", "repos"))))
		sb.WriteString("\n")
	}
	if n := len(s.ReposFailed); n > 0 {
		sb.WriteString(errorStyle.Render(fmt.Sprintf("%s %d %s failed", SymbolFail, n, util.Pluralize(n, "repo", "repos"))))
		sb.WriteString(mutedStyle.Render(" (" + strings.Join(s.ReposFailed, ", ") + ")"))
		sb.WriteString("\n")
	}

	if sb.Len() == 0 {
		return mutedStyle.Render("nothing to do") + "\n"
	}

	return sb.String()
}
