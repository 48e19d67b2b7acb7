// Package cmd implements the CLI commands for the motors server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "motors",
	Short: "Run the Milestone Motors marketplace",
	Long:  "A car marketplace server: sellers publish listings with photos, buyers browse, search, filter, and page through the catalog.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
