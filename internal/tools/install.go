package tools

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rileyhilliard/rig/internal/errors"
	"github.com/rileyhilliard/rig/internal/logger"
	"github.com/rileyhilliard/rig/internal/util"
)

// Installer runs a shell command to install one prerequisite. Commands
// run through `sh -c` so brew/apt pipelines work as written.
type Installer struct {
	Tool    string
	Command []string // argv-style; joined with ShellQuote for sh -c
	Log     logger.Logger
}

// Install runs the install command and classifies common failures.
func (i *Installer) Install() error {
	log := i.Log
	if log == nil {
		log = logger.Noop()
	}

	line := shellLine(i.Command)
	log.Info("installing %s: %s", i.Tool, line)

	cmd := exec.Command("sh", "-c", line)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return classifyInstallError(err, string(out), i.Tool)
	}

	log.Debug("install output for %s: %s", i.Tool, strings.TrimSpace(string(out)))
	return nil
}

// shellLine joins argv into a single sh -c command line, quoting the
// words that need it.
func shellLine(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		if needsQuoting(arg) {
			quoted[i] = util.ShellQuote(arg)
		} else {
			quoted[i] = arg
		}
	}
	return strings.Join(quoted, " ")
}

func needsQuoting(arg string) bool {
	return arg == "" || strings.ContainsAny(arg, " \t'\"$&|;<>()*?#~`\\")
}

func classifyInstallError(err error, output, tool string) error {
	var msg, suggestion string

	switch {
	case strings.Contains(output, "command not found") || strings.Contains(output, "not found"):
		msg = fmt.Sprintf("The installer for '%s' isn't available", tool)
		suggestion = "Install a package manager first: rig bootstrap runs brew before other tools"
	case strings.Contains(output, "Permission denied") || strings.Contains(output, "permission denied"):
		msg = fmt.Sprintf("No permission to install '%s'", tool)
		suggestion = "Re-run with sufficient privileges or fix the package manager's ownership"
	case strings.Contains(output, "No such plugin"):
		msg = fmt.Sprintf("asdf doesn't know the plugin '%s'", tool)
		suggestion = "Check the plugin name in tools.asdf_plugins"
	default:
		msg = fmt.Sprintf("Installing '%s' failed", tool)
		suggestion = "Run the install command manually to diagnose"
	}

	return errors.WrapWithCode(err, errors.ErrTools, msg, suggestion)
}

// brewInstall builds the install command for a brew formula, or nil on
// platforms where brew isn't the package manager of choice.
func brewInstall(formula string, log logger.Logger) *Installer {
	if runtime.GOOS != "darwin" && runtime.GOOS != "linux" {
		return nil
	}
	return &Installer{
		Tool:    formula,
		Command: []string{"brew", "install", formula},
		Log:     log,
	}
}

// DefaultChecks builds the prerequisite check list: core tools the later
// phases depend on, then the user's configured extras.
func DefaultChecks(install []string, log logger.Logger) []Check {
	core := []Check{
		&BinaryCheck{
			Binary:      "git",
			CategoryTag: "CORE",
			VersionArgs: []string{"--version"},
			InstallHint: "Install git: brew install git (macOS) or apt install git (Linux)",
			Installer:   brewInstall("git", log),
		},
		&BinaryCheck{
			Binary:      "ssh",
			CategoryTag: "CORE",
			VersionArgs: nil, // ssh -V writes to stderr and exits nonzero
			InstallHint: "Install the openssh client package for your platform",
		},
		&BinaryCheck{
			Binary:      "smbclient",
			CategoryTag: "CORE",
			VersionArgs: []string{"--version"},
			InstallHint: "Install smbclient: brew install samba (macOS) or apt install smbclient (Linux)",
			Installer:   brewInstall("samba", log),
		},
	}

	for _, tool := range install {
		core = append(core, &BinaryCheck{
			Binary:      tool,
			CategoryTag: "EXTRA",
			VersionArgs: []string{"--version"},
			InstallHint: fmt.Sprintf("Install %s with your package manager", tool),
			Installer:   brewInstall(tool, log),
		})
	}

	return core
}

// AsdfPluginChecks builds checks for configured asdf plugins. They only
// make sense once asdf itself is present.
func AsdfPluginChecks(plugins []string, log logger.Logger) []Check {
	if len(plugins) == 0 {
		return nil
	}

	checks := []Check{
		&BinaryCheck{
			Binary:      "asdf",
			CategoryTag: "RUNTIME",
			VersionArgs: []string{"version"},
			InstallHint: "Install asdf: brew install asdf",
			Installer:   brewInstall("asdf", log),
		},
	}

	for _, plugin := range plugins {
		checks = append(checks, &asdfPluginCheck{plugin: plugin, log: log})
	}
	return checks
}

// asdfPluginCheck verifies an asdf plugin is registered and can add it.
type asdfPluginCheck struct {
	plugin string
	log    logger.Logger
}

func (c *asdfPluginCheck) Name() string     { return "asdf_plugin_" + c.plugin }
func (c *asdfPluginCheck) Category() string { return "RUNTIME" }

func (c *asdfPluginCheck) Run() CheckResult {
	out, err := exec.Command("asdf", "plugin", "list").Output()
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("asdf plugin %s: can't list plugins", c.plugin),
			Suggestion: "Install asdf first",
		}
	}

	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == c.plugin {
			return CheckResult{
				Name:    c.Name(),
				Status:  StatusPass,
				Message: fmt.Sprintf("asdf plugin %s installed", c.plugin),
			}
		}
	}

	return CheckResult{
		Name:       c.Name(),
		Status:     StatusFail,
		Message:    fmt.Sprintf("asdf plugin %s missing", c.plugin),
		Suggestion: "Add it with: asdf plugin add " + c.plugin,
		Fixable:    true,
	}
}

func (c *asdfPluginCheck) Fix() error {
	installer := &Installer{
		Tool:    c.plugin,
		Command: []string{"asdf", "plugin", "add", c.plugin},
		Log:     c.log,
	}
	return installer.Install()
}

// EnsureAll runs every check and attempts to fix the fixable failures,
// re-checking after each fix. One broken tool never aborts the phase:
// failures are warned and the remaining tools still get their turn.
func EnsureAll(checks []Check, log logger.Logger) []CheckResult {
	if log == nil {
		log = logger.Noop()
	}

	results := make([]CheckResult, len(checks))
	for i, check := range checks {
		result := check.Run()
		if result.Status == StatusFail && result.Fixable {
			if err := check.Fix(); err != nil {
				log.Warn("%v", err)
			} else {
				result = check.Run()
			}
		}
		if result.Status != StatusPass {
			log.Warn("%s: %s", result.Name, result.Message)
		} else {
			log.Debug("%s: %s", result.Name, result.Message)
		}
		results[i] = result
	}
	return results
}
