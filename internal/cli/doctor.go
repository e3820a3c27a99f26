package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rig/internal/config"
	"github.com/rileyhilliard/rig/internal/tools"
	"github.com/rileyhilliard/rig/internal/ui"
)

var (
	doctorJSON bool
	doctorFix  bool
)

// doctorCmd checks the workstation's setup prerequisites.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check setup prerequisites",
	Long: `Check that the tools rig depends on are installed, that the config
file parses, and that asdf plugins are registered.

Examples:
  rig doctor
  rig doctor --fix
  rig doctor --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand()
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "attempt automatic fixes where possible")
}

// DoctorOutput is the JSON shape of the doctor report.
type DoctorOutput struct {
	Results []tools.CheckResult `json:"results"`
	Summary DoctorSummary       `json:"summary"`
}

// DoctorSummary summarizes the check results.
type DoctorSummary struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	Fixable  int  `json:"fixable"`
	AllClear bool `json:"all_clear"`
}

func doctorCommand() error {
	log := newLogger()

	cfg, cfgErr := loadConfig()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	checks := tools.DefaultChecks(cfg.Tools.Extra, log)
	checks = append(checks, tools.AsdfPluginChecks(cfg.Tools.AsdfPlugins, log)...)

	var results []tools.CheckResult
	if doctorFix {
		results = tools.EnsureAll(checks, log)
	} else {
		results = tools.RunAll(checks)
	}

	if doctorJSON {
		return outputDoctorJSON(results)
	}
	return outputDoctorText(results, cfgErr)
}

func outputDoctorJSON(results []tools.CheckResult) error {
	counts := tools.CountByStatus(results)
	output := DoctorOutput{
		Results: results,
		Summary: DoctorSummary{
			Pass:     counts[tools.StatusPass],
			Warn:     counts[tools.StatusWarn],
			Fail:     counts[tools.StatusFail],
			Fixable:  tools.FixableCount(results),
			AllClear: !tools.HasIssues(results),
		},
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func outputDoctorText(results []tools.CheckResult, cfgErr error) error {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ui.ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Println()
	fmt.Println(headerStyle.Render("rig diagnostic report"))
	fmt.Println()

	if cfgErr != nil {
		fmt.Printf("%s config: %s\n", warnStyle.Render(ui.SymbolWarning), cfgErr.Error())
		fmt.Println()
	}

	for _, result := range results {
		var symbol string
		var style lipgloss.Style
		switch result.Status {
		case tools.StatusPass:
			symbol = ui.SymbolComplete
			style = successStyle
		case tools.StatusWarn:
			symbol = ui.SymbolComplete
			style = warnStyle
		default:
			symbol = ui.SymbolFail
			style = errorStyle
		}

		fmt.Printf("  %s %s\n", style.Render(symbol), result.Message)
		if result.Suggestion != "" && result.Status != tools.StatusPass {
			fmt.Printf("    %s\n", mutedStyle.Render(result.Suggestion))
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("━", 60))
	fmt.Println()

	counts := tools.CountByStatus(results)
	if !tools.HasIssues(results) {
		fmt.Printf("%s Everything looks good\n", successStyle.Render(ui.SymbolSuccess))
	} else {
		total := counts[tools.StatusFail] + counts[tools.StatusWarn]
		fmt.Printf("%s %d issue%s found\n", errorStyle.Render(ui.SymbolFail), total, pluralSuffix(total))

		if fixable := tools.FixableCount(results); fixable > 0 && !doctorFix {
			fmt.Println()
			fmt.Printf("  Run with %s to attempt automatic fixes where possible.\n",
				mutedStyle.Render("--fix"))
		}
	}

	fmt.Println()
	return nil
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
