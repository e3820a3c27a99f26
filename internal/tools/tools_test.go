package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rig/internal/logger"
)

func TestCheckStatusString(t *testing.T) {
	assert.Equal(t, "pass", StatusPass.String())
	assert.Equal(t, "warn", StatusWarn.String())
	assert.Equal(t, "fail", StatusFail.String())
	assert.Equal(t, "unknown", CheckStatus(99).String())
}

// stubCheck lets tests script check behavior without touching PATH.
type stubCheck struct {
	name    string
	results []CheckResult // consumed per Run call
	fixErr  error
	fixed   int
	runs    int
}

func (c *stubCheck) Name() string     { return c.name }
func (c *stubCheck) Category() string { return "TEST" }

func (c *stubCheck) Run() CheckResult {
	idx := c.runs
	if idx >= len(c.results) {
		idx = len(c.results) - 1
	}
	c.runs++
	return c.results[idx]
}

func (c *stubCheck) Fix() error {
	c.fixed++
	return c.fixErr
}

func TestRunAll_Sequential(t *testing.T) {
	a := &stubCheck{name: "a", results: []CheckResult{{Name: "a", Status: StatusPass}}}
	b := &stubCheck{name: "b", results: []CheckResult{{Name: "b", Status: StatusFail}}}

	results := RunAll([]Check{a, b})
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Name)
	assert.Equal(t, StatusFail, results[1].Status)
}

func TestEnsureAll_FixesFixableFailures(t *testing.T) {
	check := &stubCheck{
		name: "zoxide",
		results: []CheckResult{
			{Name: "zoxide", Status: StatusFail, Fixable: true},
			{Name: "zoxide", Status: StatusPass},
		},
	}

	results := EnsureAll([]Check{check}, logger.Noop())
	require.Len(t, results, 1)
	assert.Equal(t, StatusPass, results[0].Status)
	assert.Equal(t, 1, check.fixed)
	assert.Equal(t, 2, check.runs)
}

func TestEnsureAll_FixFailureContinuesToNextTool(t *testing.T) {
	broken := &stubCheck{
		name:    "broken",
		results: []CheckResult{{Name: "broken", Status: StatusFail, Fixable: true}},
		fixErr:  assert.AnError,
	}
	healthy := &stubCheck{
		name:    "healthy",
		results: []CheckResult{{Name: "healthy", Status: StatusPass}},
	}

	log := logger.NewBufferLogger()
	results := EnsureAll([]Check{broken, healthy}, log)

	require.Len(t, results, 2)
	assert.Equal(t, StatusFail, results[0].Status)
	assert.Equal(t, StatusPass, results[1].Status)
	assert.True(t, log.HasLevel("warn"))
}

func TestEnsureAll_UnfixableFailureNotFixed(t *testing.T) {
	check := &stubCheck{
		name:    "ssh",
		results: []CheckResult{{Name: "ssh", Status: StatusFail, Fixable: false}},
	}

	EnsureAll([]Check{check}, logger.Noop())
	assert.Equal(t, 0, check.fixed)
}

func TestCountByStatusAndHasFailures(t *testing.T) {
	results := []CheckResult{
		{Status: StatusPass},
		{Status: StatusPass},
		{Status: StatusFail},
		{Status: StatusWarn},
	}

	counts := CountByStatus(results)
	assert.Equal(t, 2, counts[StatusPass])
	assert.Equal(t, 1, counts[StatusFail])
	assert.Equal(t, 1, counts[StatusWarn])
	assert.True(t, HasFailures(results))
	assert.False(t, HasFailures(results[:2]))
}

func TestDefaultChecks(t *testing.T) {
	checks := DefaultChecks([]string{"zoxide"}, logger.Noop())
	require.Len(t, checks, 4)

	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.Name()
	}
	assert.Equal(t, []string{"git", "ssh", "smbclient", "zoxide"}, names)
}

func TestAsdfPluginChecks(t *testing.T) {
	assert.Nil(t, AsdfPluginChecks(nil, logger.Noop()))

	checks := AsdfPluginChecks([]string{"nodejs", "python"}, logger.Noop())
	require.Len(t, checks, 3)
	assert.Equal(t, "asdf", checks[0].Name())
	assert.Equal(t, "asdf_plugin_nodejs", checks[1].Name())
	assert.Equal(t, "asdf_plugin_python", checks[2].Name())
}

func TestShellLine(t *testing.T) {
	assert.Equal(t, "brew install git", shellLine([]string{"brew", "install", "git"}))
	assert.Equal(t, `echo 'hello world'`, shellLine([]string{"echo", "hello world"}))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "git version 2.44.0", firstLine("git version 2.44.0\nmore stuff"))
	assert.Equal(t, "single", firstLine("single"))
}

func TestBinaryCheck_MissingBinary(t *testing.T) {
	check := &BinaryCheck{
		Binary:      "definitely-not-on-path-xyz",
		CategoryTag: "TEST",
		InstallHint: "nope",
	}

	result := check.Run()
	assert.Equal(t, StatusFail, result.Status)
	assert.False(t, result.Fixable)
	assert.Equal(t, "nope", result.Suggestion)
}
