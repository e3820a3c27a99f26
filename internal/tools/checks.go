// Package tools verifies and installs the command-line prerequisites a
// fresh workstation needs before the rest of setup can run.
package tools

import (
	"fmt"
	"os/exec"
	"strings"
)

// CheckStatus represents the result status of a check.
type CheckStatus int

const (
	StatusPass CheckStatus = iota
	StatusWarn
	StatusFail
)

// String returns a human-readable status string.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// CheckResult contains the outcome of running a check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Fixable    bool        `json:"fixable,omitempty"` // Whether install can address this
}

// Check defines the interface for prerequisite checks.
type Check interface {
	// Name returns the check's identifier.
	Name() string

	// Category returns the check's category (e.g., "CORE", "SHELL").
	Category() string

	// Run executes the check and returns the result.
	Run() CheckResult

	// Fix attempts to install or repair the prerequisite.
	// Returns nil if fix succeeded or isn't applicable.
	Fix() error
}

// RunAll executes checks sequentially. Installers mutate shared system
// state, so the tool phase never runs them concurrently.
func RunAll(checks []Check) []CheckResult {
	results := make([]CheckResult, len(checks))
	for i, check := range checks {
		results[i] = check.Run()
	}
	return results
}

// CountByStatus counts results by status.
func CountByStatus(results []CheckResult) map[CheckStatus]int {
	counts := make(map[CheckStatus]int)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}

// HasFailures returns true if any result has a fail status.
func HasFailures(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

// HasIssues returns true if any result has a fail or warn status.
func HasIssues(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == StatusFail || r.Status == StatusWarn {
			return true
		}
	}
	return false
}

// FixableCount returns the number of failed results an installer can fix.
func FixableCount(results []CheckResult) int {
	count := 0
	for _, r := range results {
		if r.Status == StatusFail && r.Fixable {
			count++
		}
	}
	return count
}

// BinaryCheck verifies a binary exists on PATH and reports its version.
type BinaryCheck struct {
	Binary      string
	CategoryTag string
	VersionArgs []string // e.g. ["--version"]; empty skips version lookup
	InstallHint string
	Installer   *Installer // nil means not fixable
}

func (c *BinaryCheck) Name() string     { return c.Binary }
func (c *BinaryCheck) Category() string { return c.CategoryTag }

func (c *BinaryCheck) Run() CheckResult {
	path, err := exec.LookPath(c.Binary)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s not found", c.Binary),
			Suggestion: c.InstallHint,
			Fixable:    c.Installer != nil,
		}
	}

	if len(c.VersionArgs) == 0 {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("%s found at %s", c.Binary, path),
		}
	}

	out, err := exec.Command(path, c.VersionArgs...).Output()
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("%s found (version unknown)", c.Binary),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s %s", c.Binary, firstLine(string(out))),
	}
}

func (c *BinaryCheck) Fix() error {
	if c.Installer == nil {
		return nil
	}
	return c.Installer.Install()
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
