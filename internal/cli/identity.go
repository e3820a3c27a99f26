package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rig/internal/identity"
	"github.com/rileyhilliard/rig/internal/ui"
)

var identityHostFlag string

// identityCmd tests the installed keys against the git host.
var identityCmd = &cobra.Command{
	Use:   "identity",
	Short: "Test SSH keys against the git host",
	Long: `Authenticate to the git host with the installed SSH keys and report
which account they belong to. Keys loaded in the SSH agent are tried too.

Examples:
  rig identity
  rig identity --host gitea.internal:2222`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := identityCommand(identityHostFlag)
		return err
	},
}

func init() {
	rootCmd.AddCommand(identityCmd)
	identityCmd.Flags().StringVar(&identityHostFlag, "host", "", "git host to test against (default from config)")
}

func identityCommand(hostFlag string) (identity.Result, error) {
	cfg, err := loadConfig()
	if err != nil {
		return identity.Result{}, err
	}
	log := newLogger()

	host := hostFlag
	if host == "" {
		host = cfg.Git.Host
	}

	prober := &identity.Prober{
		Host:   host,
		KeyDir: cfg.Keys.Dest,
		Log:    log,
	}

	spinner := ui.NewSpinner("Testing identity against " + host)
	spinner.Start()
	result, err := prober.Probe()
	if err != nil {
		spinner.Fail()
		return result, err
	}

	switch {
	case result.NoKey:
		spinner.Skip()
		fmt.Println("No usable private key found. Run 'rig keys' first.")
	case result.Account == "":
		spinner.Success()
		fmt.Printf("%s Authenticated, but the account couldn't be detected\n", ui.SymbolWarning)
	default:
		spinner.Success()
		fmt.Printf("%s Authenticated as %s\n", ui.SymbolSuccess, result.Account)
	}

	return result, nil
}
