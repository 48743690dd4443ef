package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lzjever/fabric-mdr/internal/fabric"
)

var (
	maxWait      time.Duration
	pollInterval time.Duration
)

var refreshCmd = &cobra.Command{
	Use:   "refresh <lakehouse>",
	Short: "Refresh a lakehouse's SQL endpoint metadata and wait for completion",
	Long: `Resolves the lakehouse to its SQL analytics endpoint, triggers a
metadata refresh, and blocks until the refresh completes or --max-wait
elapses. Exits non-zero on any failure so a pipeline halts instead of
querying stale metadata.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lakehouse := args[0]
		requireWorkspace()

		client, log, err := newFabricClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		resolver := fabric.NewResolver(client, log)
		endpointID, err := resolver.Resolve(ctx, workspaceID, lakehouse)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		orch := fabric.NewOrchestrator(client, pollInterval, log)
		if err := orch.RefreshAndWait(ctx, workspaceID, endpointID, maxWait); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("SQL endpoint metadata refreshed for lakehouse %q.\n", lakehouse)
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <lakehouse>",
	Short: "Resolve a lakehouse to its SQL analytics endpoint ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lakehouse := args[0]
		requireWorkspace()

		client, log, err := newFabricClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()

		resolver := fabric.NewResolver(client, log)
		endpointID, err := resolver.Resolve(context.Background(), workspaceID, lakehouse)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(endpointID)
	},
}

func requireWorkspace() {
	if workspaceID == "" {
		fmt.Fprintln(os.Stderr, "Error: --workspace is required")
		os.Exit(1)
	}
}

func init() {
	refreshCmd.Flags().DurationVar(&maxWait, "max-wait", fabric.DefaultMaxWait, "How long to wait for the refresh to complete")
	refreshCmd.Flags().DurationVar(&pollInterval, "poll-interval", fabric.DefaultPollInterval, "Interval between status polls")
	rootCmd.AddCommand(refreshCmd, resolveCmd)
}
