package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/fooddash/internal/analysis"
	"github.com/KaramelBytes/fooddash/internal/survey"
)

var (
	sumSampleRows int
	sumTopValues  int
	sumNoGroups   bool
)

var sectionStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#bc5090"))

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a profile of the survey and its outcome cross-tabulations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := effectiveConfig(cmd)
		if err != nil {
			return err
		}
		ds, err := survey.LoadFile(c.DataPath)
		if err != nil {
			return err
		}
		opt := analysis.DefaultOptions()
		if sumSampleRows > 0 {
			opt.SampleRows = sumSampleRows
		}
		if sumTopValues > 0 {
			opt.TopValues = sumTopValues
		}
		opt.GroupByOutcome = !sumNoGroups

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sectionStyle.Render("Survey profile"))
		fmt.Fprintln(out, analysis.Profile(ds, opt).Markdown())

		for _, col := range []string{survey.ColGender, survey.ColMaritalStatus} {
			t, err := analysis.Pivot(ds, col)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, sectionStyle.Render(col+" by Buy_again"))
			fmt.Fprintln(out, t.String())
		}
		return nil
	},
}

func init() {
	summaryCmd.Flags().IntVar(&sumSampleRows, "sample-rows", 0, "head rows to show (default 5)")
	summaryCmd.Flags().IntVar(&sumTopValues, "top", 0, "categorical values listed per column (default 5)")
	summaryCmd.Flags().BoolVar(&sumNoGroups, "no-groups", false, "skip per-outcome numeric summaries")
	rootCmd.AddCommand(summaryCmd)
}
