package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lzjever/fabric-mdr/internal/fabric"
)

var (
	apiURL      string
	output      string
	workspaceID string
	fabricURL   string
	audience    string
	staticToken string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "mdrctl",
	Short: "MDR CLI - Fabric SQL endpoint metadata refresh tool",
	Long: `mdrctl resolves a Fabric lakehouse to its SQL analytics endpoint and
triggers a metadata refresh, blocking until downstream query engines
see the current schema.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workspaceID, "workspace", "w", "", "Fabric workspace ID")
	rootCmd.PersistentFlags().StringVar(&fabricURL, "fabric-url", fabric.DefaultBaseURL, "Fabric API base URL")
	rootCmd.PersistentFlags().StringVar(&audience, "audience", fabric.DefaultAudience, "Token audience")
	rootCmd.PersistentFlags().StringVar(&staticToken, "token", os.Getenv("MDR_STATIC_TOKEN"), "Pre-acquired bearer token (skips the Azure credential chain)")
	rootCmd.PersistentFlags().StringVarP(&apiURL, "api-url", "a", "http://localhost:8080", "mdr-api URL (job commands)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level")
}
