package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rig/internal/config"
	"github.com/rileyhilliard/rig/internal/keys"
	"github.com/rileyhilliard/rig/internal/ui"
	"github.com/rileyhilliard/rig/internal/util"
)

var (
	keysShareFlags ShareFlags
	keysNamesFlag  string
	keysDestFlag   string
	keysOverwrite  bool
)

// keysCmd fetches SSH keys from the share and installs them locally.
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Install SSH keys from the network share",
	Long: `Browse the network share, pick the key files to install, and copy
them into your SSH directory with the right permissions. Private keys
get 600, public keys 644, and the directory itself 700.

Keys already present are left untouched unless --overwrite is set.

Examples:
  rig keys
  rig keys --keys all
  rig keys --keys id_ed25519,id_ed25519.pub
  rig keys --smb-server nas.local --share homes --non-interactive --keys all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return keysCommand()
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
	AddShareFlags(keysCmd, &keysShareFlags)
	keysCmd.Flags().StringVar(&keysNamesFlag, "keys", "", "comma-separated key names, or 'all'")
	keysCmd.Flags().StringVar(&keysDestFlag, "dest", "", "destination directory (default ~/.ssh)")
	keysCmd.Flags().BoolVar(&keysOverwrite, "overwrite", false, "replace keys that already exist")
}

func keysCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	src := newPromptSource(keysShareFlags.NonInteractive)

	loc, cred, err := resolveShare(&keysShareFlags, cfg, src)
	if err != nil {
		return err
	}

	client, err := newShareClient(cfg, cred, log)
	if err != nil {
		return err
	}

	spinner := ui.NewSpinner("Browsing " + loc.String())
	spinner.Start()
	entries, err := client.List(loc)
	if err != nil {
		spinner.Fail()
		return requireShareReachable(err, loc)
	}
	spinner.Success()

	selected, err := keys.Select(entries, keysNamesFlag, src, log)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		fmt.Println("No keys selected, nothing to do.")
		return nil
	}

	installer := &keys.Installer{
		Client: client,
		Dest:   keysDest(cfg),
		Policy: keysPolicy(cfg),
		Log:    log,
	}

	res, err := installer.Install(loc, selected)
	if err != nil {
		return err
	}

	fmt.Printf("%s %d %s installed, %d skipped, %d failed\n",
		ui.SymbolSuccess,
		res.Installed, util.Pluralize(res.Installed, "key", "keys"),
		res.Skipped, res.Failed)
	return nil
}

// keysDest resolves the keystore directory: flag wins over config.
func keysDest(cfg *config.Config) string {
	if keysDestFlag != "" {
		return keysDestFlag
	}
	return cfg.Keys.Dest
}

// keysPolicy resolves the overwrite policy: flag wins over config.
func keysPolicy(cfg *config.Config) keys.Policy {
	if keysOverwrite {
		return keys.PolicyOverwrite
	}
	return keys.PolicyFromConfig(cfg.Keys.OnExisting)
}
