package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rig/internal/config"
	"github.com/rileyhilliard/rig/internal/gitrepo"
	"github.com/rileyhilliard/rig/internal/identity"
	"github.com/rileyhilliard/rig/internal/keys"
	"github.com/rileyhilliard/rig/internal/logger"
	"github.com/rileyhilliard/rig/internal/tools"
	"github.com/rileyhilliard/rig/internal/ui"
)

var (
	bootstrapShareFlags ShareFlags
	bootstrapKeysFlag   string
	bootstrapSkipTools  bool
	bootstrapSkipClone  bool
)

// bootstrapCmd runs the full workstation setup, phase by phase.
var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Run the full workstation setup",
	Long: `Run every setup phase in order: check and install prerequisite
tools, fetch SSH keys from the network share, verify them against the
git host, and clone your repositories.

Each phase degrades gracefully. An unreachable share means setup
continues without new keys; a failed identity test skips cloning.

Examples:
  rig bootstrap
  rig bootstrap --keys all --non-interactive
  rig bootstrap --skip-tools`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return bootstrapCommand()
	},
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
	AddShareFlags(bootstrapCmd, &bootstrapShareFlags)
	bootstrapCmd.Flags().StringVar(&bootstrapKeysFlag, "keys", "", "comma-separated key names, or 'all'")
	bootstrapCmd.Flags().BoolVar(&bootstrapSkipTools, "skip-tools", false, "skip the prerequisite tool phase")
	bootstrapCmd.Flags().BoolVar(&bootstrapSkipClone, "skip-clone", false, "skip the repository clone phase")
}

func bootstrapCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	pd := ui.NewPhaseDisplay(os.Stdout)

	ui.PrintHeader(ui.HeaderInfo{Version: formatVersion(version), Tagline: "Workstation setup"})

	var summary ui.SetupSummary

	// Phase 1: prerequisite tools
	if bootstrapSkipTools {
		pd.RenderSkipped("Checking tools", "--skip-tools")
	} else {
		runToolsPhase(cfg, pd, log)
	}

	// Phase 2: SSH keys from the share
	keyResult, err := runKeysPhase(cfg, pd, log)
	if err != nil {
		return err
	}
	summary.KeysInstalled = keyResult.Installed
	summary.KeysSkipped = keyResult.Skipped
	summary.KeysFailed = keyResult.Failed

	// Phase 3: identity test
	account := runIdentityPhase(cfg, pd, log)
	summary.Account = account

	// Phase 4: clone repositories
	switch {
	case bootstrapSkipClone:
		pd.RenderSkipped("Cloning repos", "--skip-clone")
	case account == "":
		pd.RenderSkipped("Cloning repos", "no identity detected")
	default:
		cloneResult := runClonePhase(cfg, account, pd, log)
		summary.ReposCloned = cloneResult.Cloned
		summary.ReposUpdated = cloneResult.Updated
		summary.ReposFailed = cloneResult.Failed
	}

	pd.Divider()
	fmt.Print(ui.RenderSetupSummary(summary))
	return nil
}

func runToolsPhase(cfg *config.Config, pd *ui.PhaseDisplay, log logger.Logger) {
	start := time.Now()
	pd.RenderProgress("Checking tools")

	checks := tools.DefaultChecks(cfg.Tools.Extra, log)
	checks = append(checks, tools.AsdfPluginChecks(cfg.Tools.AsdfPlugins, log)...)

	var results []tools.CheckResult
	if cfg.Tools.Install {
		results = tools.EnsureAll(checks, log)
	} else {
		results = tools.RunAll(checks)
	}

	if tools.HasFailures(results) {
		pd.RenderFailed("Checking tools", time.Since(start))
		for _, r := range results {
			if r.Status != tools.StatusPass {
				pd.RenderSubStatus(ui.SymbolFail, r.Name, r.Message)
			}
		}
		if !cfg.Tools.Install {
			pd.RenderSubStatus(ui.SymbolPending, "hint", "set tools.install: true to install automatically")
		}
		return
	}

	pd.RenderSuccess("Checked tools", time.Since(start))
}

// runKeysPhase fetches and installs keys. An unreachable share is a
// warning, not a fatal error: setup continues with zero keys and the
// installer is never invoked. Missing credentials are fatal; there is
// nothing sensible to continue with.
func runKeysPhase(cfg *config.Config, pd *ui.PhaseDisplay, log logger.Logger) (keys.Result, error) {
	start := time.Now()
	src := newPromptSource(bootstrapShareFlags.NonInteractive)

	loc, cred, err := resolveShare(&bootstrapShareFlags, cfg, src)
	if err != nil {
		pd.RenderFailed("Installing keys", time.Since(start))
		return keys.Result{}, err
	}

	client, err := newShareClient(cfg, cred, log)
	if err != nil {
		pd.RenderFailed("Installing keys", time.Since(start))
		ui.PrintWarning(err.Error())
		return keys.Result{}, nil
	}

	pd.RenderProgress("Browsing " + loc.String())
	entries, err := client.List(loc)
	if err != nil {
		pd.RenderFailed("Browsing "+loc.String(), time.Since(start))
		ui.PrintWarning(requireShareReachable(err, loc).Error())
		return keys.Result{}, nil
	}

	selected, err := keys.Select(entries, bootstrapKeysFlag, src, log)
	if err != nil {
		pd.RenderFailed("Installing keys", time.Since(start))
		return keys.Result{}, err
	}
	if len(selected) == 0 {
		pd.RenderSkipped("Installing keys", "nothing selected")
		return keys.Result{}, nil
	}

	installer := &keys.Installer{
		Client: client,
		Dest:   cfg.Keys.Dest,
		Policy: keys.PolicyFromConfig(cfg.Keys.OnExisting),
		Log:    log,
	}

	result, err := installer.Install(loc, selected)
	if err != nil {
		pd.RenderFailed("Installing keys", time.Since(start))
		ui.PrintWarning(err.Error())
		return result, nil
	}

	pd.RenderSuccess("Installed keys", time.Since(start))
	return result, nil
}

// runIdentityPhase probes the git host and returns the detected account,
// empty when nothing could be verified.
func runIdentityPhase(cfg *config.Config, pd *ui.PhaseDisplay, log logger.Logger) string {
	start := time.Now()
	pd.RenderProgress("Testing identity")

	prober := &identity.Prober{
		Host:   cfg.Git.Host,
		KeyDir: cfg.Keys.Dest,
		Log:    log,
	}

	result, err := prober.Probe()
	if err != nil {
		pd.RenderFailed("Testing identity", time.Since(start))
		ui.PrintWarning(err.Error())
		return ""
	}
	if result.NoKey {
		pd.RenderSkipped("Testing identity", "no private key available")
		return ""
	}

	pd.RenderSuccess("Tested identity", time.Since(start))
	return result.Account
}

func runClonePhase(cfg *config.Config, account string, pd *ui.PhaseDisplay, log logger.Logger) gitrepo.CloneResult {
	start := time.Now()
	pd.RenderProgress("Cloning repos")

	result, err := cloneRepos(cfg, account, cfg.Git.Include, log)
	if err != nil {
		pd.RenderFailed("Cloning repos", time.Since(start))
		ui.PrintWarning(err.Error())
		return result
	}

	pd.RenderSuccess("Cloned repos", time.Since(start))
	return result
}
