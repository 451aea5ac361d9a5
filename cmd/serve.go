package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/fooddash/internal/dashboard"
	"github.com/spf13/cobra"
)

var (
	listenHost string
	listenPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the dashboard and serve it until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func addListenFlags(c *cobra.Command) {
	c.Flags().StringVar(&listenHost, "host", "", "listen host (overrides config, default 127.0.0.1)")
	c.Flags().IntVar(&listenPort, "port", 0, "listen port (overrides config, default 8050)")
}

func runServe(cmd *cobra.Command, args []string) error {
	c, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(c)
	page, err := buildPage(c, logger)
	if err != nil {
		return err
	}
	srv, err := dashboard.NewServer(c.Addr(), page, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}

func init() {
	addListenFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}
