package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rig/internal/config"
	"github.com/rileyhilliard/rig/internal/errors"
	"github.com/rileyhilliard/rig/internal/gitrepo"
	"github.com/rileyhilliard/rig/internal/logger"
	"github.com/rileyhilliard/rig/internal/ui"
	"github.com/rileyhilliard/rig/internal/util"
)

var (
	cloneAccountFlag string
	cloneIncludeFlag string
)

// cloneCmd clones the account's repositories into the source directory.
var cloneCmd = &cobra.Command{
	Use:   "clone",
	Short: "Clone your repositories",
	Long: `Detect your account via SSH, list its repositories through the
hosting API, and clone them into the source directory. Repositories
that already exist locally are pulled instead.

Examples:
  rig clone
  rig clone --account octocat
  rig clone --include dotfiles,tools`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cloneCommand()
	},
}

func init() {
	rootCmd.AddCommand(cloneCmd)
	cloneCmd.Flags().StringVar(&cloneAccountFlag, "account", "", "account to clone from (skips identity detection)")
	cloneCmd.Flags().StringVar(&cloneIncludeFlag, "include", "", "comma-separated repos to clone (default all)")
}

func cloneCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()

	account := cloneAccountFlag
	if account == "" {
		result, err := identityCommand("")
		if err != nil {
			return err
		}
		if result.Account == "" {
			return errors.New(errors.ErrClone,
				"Couldn't detect which account to clone from",
				"Pass --account explicitly, or install keys first with 'rig keys'")
		}
		account = result.Account
	}

	include := util.SplitCSV(cloneIncludeFlag)
	if len(include) == 0 {
		include = cfg.Git.Include
	}

	result, err := cloneRepos(cfg, account, include, log)
	if err != nil {
		return err
	}

	fmt.Printf("%s %d cloned, %d updated, %d failed\n",
		ui.SymbolSuccess, len(result.Cloned), len(result.Updated), len(result.Failed))
	return nil
}

// cloneRepos runs the discovery and clone pass shared by the clone and
// bootstrap commands.
func cloneRepos(cfg *config.Config, account string, include []string, log logger.Logger) (gitrepo.CloneResult, error) {
	gitBin, err := gitrepo.FindGit()
	if err != nil {
		return gitrepo.CloneResult{}, err
	}

	spinner := ui.NewSpinner("Listing repositories for " + account)
	spinner.Start()
	names, err := gitrepo.ListRepos(cfg.Git.API, account)
	if err != nil {
		spinner.Fail()
		return gitrepo.CloneResult{}, err
	}
	spinner.Success()

	names = gitrepo.FilterRepos(names, include)
	if len(names) == 0 {
		log.Info("no repositories matched, nothing to clone")
		return gitrepo.CloneResult{}, nil
	}

	cloner := &gitrepo.Cloner{
		Bin:      gitBin,
		Host:     cfg.Git.Host,
		CloneDir: cfg.Git.CloneDir,
		Log:      log,
	}
	return cloner.CloneAll(names), nil
}
