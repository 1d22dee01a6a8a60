package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glimpse-dev/glimpse/internal/adapters/mcp"
	"github.com/glimpse-dev/glimpse/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "glimpse",
	Short: "Glimpse inspects the live UI of instrumented applications",
	Long: `Glimpse talks to the inspection bridge embedded in a running GUI
application: query elements, project the DOM, diagnose visibility
problems, and expose it all to AI agents over MCP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", cli.DefaultConfigFile, "Path to the glimpse config file")
	rootCmd.PersistentFlags().Int("port", 0, "Bridge port (overrides config)")
	rootCmd.PersistentFlags().String("bridge-url", "", "Full bridge base URL (overrides port)")
}

// loadConfig merges the config file with persistent flag overrides.
func loadConfig(cmd *cobra.Command) (cli.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := cli.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}
	if url, _ := cmd.Flags().GetString("bridge-url"); url != "" {
		cfg.BridgeURL = url
	}
	return cfg, nil
}

// bridgeClient builds the client for commands that talk to a running
// application.
func bridgeClient(cmd *cobra.Command) (*mcp.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return mcp.NewClient(cfg.ResolveBridgeURL()), nil
}
