package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rig/internal/share"
	"github.com/rileyhilliard/rig/internal/ui"
)

var lsShareFlags ShareFlags

// lsCmd lists the contents of the share directory without installing.
var lsCmd = &cobra.Command{
	Use:   "ls [subdirectory]",
	Short: "List files on the network share",
	Long: `List the contents of the configured share directory. Useful for
checking what keys are available before running 'rig keys'.

Examples:
  rig ls
  rig ls archive
  rig ls --share-path backups/2024`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sub := ""
		if len(args) == 1 {
			sub = args[0]
		}
		return lsCommand(sub)
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
	AddShareFlags(lsCmd, &lsShareFlags)
}

func lsCommand(sub string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	src := newPromptSource(lsShareFlags.NonInteractive)

	loc, cred, err := resolveShare(&lsShareFlags, cfg, src)
	if err != nil {
		return err
	}
	if sub != "" {
		loc = loc.Child(sub)
	}

	client, err := newShareClient(cfg, cred, log)
	if err != nil {
		return err
	}

	entries, err := client.List(loc)
	if err != nil {
		return requireShareReachable(err, loc)
	}

	if len(entries) == 0 {
		fmt.Printf("%s is empty\n", loc.String())
		return nil
	}

	fmt.Println(renderListing(entries))
	return nil
}

// renderListing formats share entries as a two-column table.
func renderListing(entries []share.Entry) string {
	nameWidth := 20
	for _, entry := range entries {
		if len(entry.Name) > nameWidth {
			nameWidth = len(entry.Name)
		}
	}

	rows := make([][]string, len(entries))
	for i, entry := range entries {
		rows[i] = []string{entry.Name, entry.Kind.String()}
	}

	return ui.RenderSimpleTable(
		[]ui.TableColumn{{Title: "NAME", Width: nameWidth + 2}, {Title: "TYPE", Width: 6}},
		rows,
	)
}
