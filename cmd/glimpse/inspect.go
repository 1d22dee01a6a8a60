package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glimpse-dev/glimpse/internal/presentation/report"
	"github.com/glimpse-dev/glimpse/pkg/domain"
)

// Client commands against a running application's bridge. Structured
// results render as markdown; raw JSON commands pretty-print.

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the application's bridge is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := bridgeClient(cmd)
		if err != nil {
			return err
		}
		info, err := client.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("bridge not available: %w", err)
		}
		fmt.Printf("%s (%s), pid %d, up %s\n", info.App, info.Status, info.PID, info.UptimeHuman)
		return nil
	},
}

var domCmd = &cobra.Command{
	Use:   "dom",
	Short: "Print a budget-bounded projection of the document tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := bridgeClient(cmd)
		if err != nil {
			return err
		}
		selector, _ := cmd.Flags().GetString("selector")
		maxDepth, _ := cmd.Flags().GetInt("max-depth")
		maxNodes, _ := cmd.Flags().GetInt("max-nodes")

		raw, err := client.Dom(cmd.Context(), selector, maxDepth, maxNodes)
		if err != nil {
			return err
		}
		return printJSON(raw)
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <selector>",
	Short: "Extract a value from the first selector match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := bridgeClient(cmd)
		if err != nil {
			return err
		}
		mode, _ := cmd.Flags().GetString("mode")
		attr, _ := cmd.Flags().GetString("attr")

		raw, err := client.Query(cmd.Context(), args[0], mode, attr)
		if err != nil {
			return err
		}
		// The result is a JSON string; print it plain.
		var value string
		if json.Unmarshal([]byte(raw), &value) == nil {
			fmt.Println(value)
			return nil
		}
		return printJSON(raw)
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <selector>",
	Short: "Analyze why an element is or is not visible",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := bridgeClient(cmd)
		if err != nil {
			return err
		}
		raw, err := client.Inspect(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		var result domain.ElementReport
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return fmt.Errorf("decode report: %w", err)
		}
		fmt.Print(report.Render(report.Element(&result)))
		return nil
	},
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Run an aggregate visibility/health scan over the document",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := bridgeClient(cmd)
		if err != nil {
			return err
		}
		raw, err := client.Diagnose(cmd.Context())
		if err != nil {
			return err
		}
		var result domain.DiagnosticResult
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
		fmt.Println(report.HealthBadge(result.Healthy))
		fmt.Print(report.Render(report.Diagnostic(&result)))
		return nil
	},
}

var validateClassesCmd = &cobra.Command{
	Use:   "validate-classes <class> [class...]",
	Short: "Check whether CSS classes are defined by any accessible style rule",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := bridgeClient(cmd)
		if err != nil {
			return err
		}
		raw, err := client.ValidateClasses(cmd.Context(), args)
		if err != nil {
			return err
		}
		var result domain.ClassReport
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return fmt.Errorf("decode report: %w", err)
		}
		fmt.Print(report.Render(report.Classes(&result)))
		return nil
	},
}

var evalCmd = &cobra.Command{
	Use:   "eval <script>",
	Short: "Execute raw script text in the application's document context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := bridgeClient(cmd)
		if err != nil {
			return err
		}
		raw, err := client.Eval(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(raw)
	},
}

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the application window to a PNG file",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := bridgeClient(cmd)
		if err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("output")
		saved, err := client.Screenshot(cmd.Context(), path)
		if err != nil {
			return err
		}
		fmt.Printf("Screenshot saved: %s\n", saved)
		return nil
	},
}

// printJSON pretty-prints a raw JSON payload, falling back to printing it
// verbatim.
func printJSON(raw string) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		fmt.Println(raw)
		return nil
	}
	fmt.Println(buf.String())
	return nil
}

func init() {
	domCmd.Flags().String("selector", "", "Root the projection at the first match")
	domCmd.Flags().Int("max-depth", 0, "Depth budget (default 10, max 50)")
	domCmd.Flags().Int("max-nodes", 0, "Node budget (default 500, max 5000)")

	queryCmd.Flags().String("mode", "", "What to extract: text (default), html, value, or attr")
	queryCmd.Flags().String("attr", "", "Attribute name for mode 'attr'")

	screenshotCmd.Flags().String("output", "", "Output file path")

	rootCmd.AddCommand(statusCmd, domCmd, queryCmd, inspectCmd,
		diagnoseCmd, validateClassesCmd, evalCmd, screenshotCmd)
}
