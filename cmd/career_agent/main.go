// Package main provides the career_agent CLI: the HTTP API server plus offline
// matching and dataset tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "career_agent",
	Short: "Career recommender API server and tools",
	Long: "career_agent matches a user's skills against a catalog of job profiles, explains the match " +
		"and builds a learning roadmap for the missing skills.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
