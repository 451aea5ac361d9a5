package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/fooddash/internal/config"
	"github.com/KaramelBytes/fooddash/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string
	dataPath  string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "fooddash",
	Short: "Online food delivery survey dashboard",
	Long: `fooddash loads the online food delivery preferences survey, aggregates it by
the "buy again" outcome and serves six charts on a single local HTML page.

Running fooddash without a subcommand is the same as "fooddash serve".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.fooddash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "survey CSV path (overrides config)")
	addListenFlags(rootCmd)
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal here; commands that need config fail in effectiveConfig
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// effectiveConfig applies flag overrides to the loaded configuration and
// validates the result.
func effectiveConfig(cmd *cobra.Command) (*cfgpkg.Global, error) {
	if cfg == nil {
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	c := *cfg
	f := cmd.Flags()
	if f.Changed("debug") {
		c.Debug = debug
	}
	if f.Changed("log-format") {
		c.LogFormat = logFormat
	}
	if f.Changed("data") {
		c.DataPath = dataPath
	}
	if f.Changed("host") {
		c.Host = listenHost
	}
	if f.Changed("port") {
		c.Port = listenPort
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &c, nil
}

func newLogger(c *cfgpkg.Global) *slog.Logger {
	lc := logging.DefaultConfig()
	if c.Debug {
		lc.Level = logging.LevelDebug
	}
	lc.JSON = c.LogFormat == "json"
	return logging.New(lc)
}
