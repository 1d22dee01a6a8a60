package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glimpse-dev/glimpse"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of glimpse",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("glimpse version %s\n", strings.TrimSpace(glimpse.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
