package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/fooddash/internal/chart"
	cfgpkg "github.com/KaramelBytes/fooddash/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set fooddash configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_path: %s\n", cfg.DataPath)
		fmt.Fprintf(out, "host: %s\n", cfg.Host)
		fmt.Fprintf(out, "port: %d\n", cfg.Port)
		fmt.Fprintf(out, "debug: %t\n", cfg.Debug)
		fmt.Fprintf(out, "log_format: %s\n", cfg.LogFormat)
		fmt.Fprintf(out, "stylesheet_url: %s\n", cfg.StylesheetURL)
		fmt.Fprintf(out, "chart_width: %d\n", cfg.ChartWidth)
		fmt.Fprintf(out, "chart_height: %d\n", cfg.ChartHeight)
		fmt.Fprintf(out, "palette: %s\n", strings.Join(cfg.Palette, ","))
		if cfg.Footer != "" {
			fmt.Fprintf(out, "footer: %s\n", cfg.Footer)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "data_path":
			cfg.DataPath = val
		case "host":
			cfg.Host = val
		case "port":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 || i > 65535 {
				return fmt.Errorf("invalid port: %v", val)
			}
			cfg.Port = i
		case "debug":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for debug: %w", err)
			}
			cfg.Debug = b
		case "log_format":
			switch strings.ToLower(val) {
			case "text", "json":
				cfg.LogFormat = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_format: %s (use text or json)", val)
			}
		case "stylesheet_url":
			cfg.StylesheetURL = val
		case "footer":
			cfg.Footer = val
		case "chart_width", "chart_height":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for %s: %v", key, val)
			}
			if key == "chart_width" {
				cfg.ChartWidth = i
			} else {
				cfg.ChartHeight = i
			}
		case "palette":
			p := chart.Palette(strings.Split(val, ","))
			for i := range p {
				p[i] = strings.TrimSpace(p[i])
			}
			if err := p.Validate(); err != nil {
				return err
			}
			cfg.Palette = p
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
