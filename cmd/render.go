package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/fooddash/internal/utils"
	"github.com/spf13/cobra"
)

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Build the dashboard and write it to an HTML file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := effectiveConfig(cmd)
		if err != nil {
			return err
		}
		page, err := buildPage(c, newLogger(c))
		if err != nil {
			return err
		}
		b, err := page.Bytes()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(filepath.Dir(renderOutput)); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := utils.SafeWriteFile(renderOutput, b); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s (%s)\n", renderOutput, utils.HumanSize(len(b)))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "dashboard.html", "output HTML file")
	rootCmd.AddCommand(renderCmd)
}
