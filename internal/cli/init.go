package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/rig/internal/config"
	"github.com/rileyhilliard/rig/internal/errors"
	"github.com/rileyhilliard/rig/internal/ui"
)

var (
	initForce          bool
	initNonInteractive bool
	initServerFlag     string
	initShareFlag      string
	initUserFlag       string
)

// initCmd creates the rig config file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the rig config file",
	Long: `Create the config file interactively. Asks for the SMB server,
share, and username, plus the git host; everything else gets defaults
you can edit later. The password is never stored.

Examples:
  rig init
  rig init --non-interactive --smb-server nas.local --share homes --smb-user jdoe`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config without asking")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts, use flags and defaults")
	initCmd.Flags().StringVar(&initServerFlag, "smb-server", "", "SMB server hostname or IP")
	initCmd.Flags().StringVar(&initShareFlag, "share", "", "share name on the server")
	initCmd.Flags().StringVar(&initUserFlag, "smb-user", "", "username for the share")
}

func initCommand() error {
	configPath, err := config.GlobalConfigPath()
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(configPath); statErr == nil && !initForce {
		if initNonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", configPath)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	if initNonInteractive {
		if initServerFlag == "" {
			return errors.New(errors.ErrConfig,
				"SMB server is required in non-interactive mode",
				"Provide --smb-server or run interactively")
		}
		cfg.SMB.Server = initServerFlag
		cfg.SMB.Share = initShareFlag
		cfg.SMB.User = initUserFlag
	} else {
		if err := runInitForm(cfg); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	header := `# rig configuration
# Run 'rig bootstrap' for the full setup, 'rig doctor' to check tooling.
# The share password is never stored here; it is prompted at run time.

`
	content := header + string(data)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create the config directory",
			"Check permissions on "+filepath.Dir(configPath))
	}
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Println("Next steps:")
	fmt.Println("  rig doctor     - Check prerequisite tooling")
	fmt.Println("  rig keys       - Install SSH keys from the share")
	fmt.Println("  rig bootstrap  - Run the full setup")
	return nil
}

// runInitForm collects the share and git settings interactively.
func runInitForm(cfg *config.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("SMB server").
				Description("Hostname or IP of the server holding your keys").
				Placeholder("nas.local or 192.168.1.10").
				Value(&cfg.SMB.Server).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("SMB server is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Share name").
				Placeholder("homes").
				Value(&cfg.SMB.Share).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("share name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Share username").
				Placeholder("jdoe").
				Value(&cfg.SMB.User),
			huh.NewInput().
				Title("Directory inside the share (optional)").
				Description("Forward-slash separated, empty for the share root").
				Placeholder("backups/ssh").
				Value(&cfg.SMB.Path),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Git host").
				Description("SSH host your keys authenticate to").
				Placeholder("github.com").
				Value(&cfg.Git.Host),
			huh.NewInput().
				Title("Clone directory").
				Placeholder("~/src").
				Value(&cfg.Git.CloneDir),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive")
	}
	return nil
}
