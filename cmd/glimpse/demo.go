package main

import (
	"bytes"
	"context"
	_ "embed"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glimpse-dev/glimpse"
	"github.com/glimpse-dev/glimpse/internal/adapters/htmldoc"
	"github.com/glimpse-dev/glimpse/internal/logging"
)

//go:embed demo.html
var demoPage []byte

// demoCmd serves a canned document through a real bridge, so the client
// commands and MCP tools can be exercised without instrumenting an
// application.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a demo bridge over a built-in document",
	Long: `Starts a full inspection bridge on the configured port, backed by a
built-in HTML document seeded with visibility problems. Point the other
glimpse commands (or an MCP agent) at it to explore the tool surface.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := logging.New(cfg.SlogLevel())

		doc, err := htmldoc.Parse(
			bytes.NewReader(demoPage),
			htmldoc.WithViewport(cfg.Viewport.Width, cfg.Viewport.Height),
		)
		if err != nil {
			return err
		}

		ins, err := glimpse.Start("glimpse-demo",
			glimpse.WithPort(cfg.Port),
			glimpse.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		defer ins.Close(context.Background())

		logger.Info("demo bridge ready", "url", ins.URL())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := ins.Serve(ctx, doc, nil); err != nil && err != context.Canceled {
			return err
		}
		logger.Info("demo bridge stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
