package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lzjever/fabric-mdr/internal/fabric"
)

var lakehouseCmd = &cobra.Command{
	Use:   "lakehouse",
	Short: "Lakehouse commands",
}

var lakehouseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lakehouses in the workspace",
	Run: func(cmd *cobra.Command, args []string) {
		listItems(func(ctx context.Context, c *fabric.Client) ([]fabric.Item, error) {
			return c.ListLakehouses(ctx, workspaceID)
		})
	},
}

var endpointCmd = &cobra.Command{
	Use:   "endpoint",
	Short: "SQL endpoint commands",
}

var endpointListCmd = &cobra.Command{
	Use:   "list",
	Short: "List SQL endpoints in the workspace",
	Run: func(cmd *cobra.Command, args []string) {
		listItems(func(ctx context.Context, c *fabric.Client) ([]fabric.Item, error) {
			return c.ListSQLEndpoints(ctx, workspaceID)
		})
	},
}

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Workspace item commands",
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all items in the workspace",
	Run: func(cmd *cobra.Command, args []string) {
		listItems(func(ctx context.Context, c *fabric.Client) ([]fabric.Item, error) {
			return c.ListItems(ctx, workspaceID)
		})
	},
}

func listItems(list func(ctx context.Context, c *fabric.Client) ([]fabric.Item, error)) {
	requireWorkspace()

	client, log, err := newFabricClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	items, err := list(context.Background(), client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printResult(items)
}

func init() {
	lakehouseCmd.AddCommand(lakehouseListCmd)
	endpointCmd.AddCommand(endpointListCmd)
	itemCmd.AddCommand(itemListCmd)
	rootCmd.AddCommand(lakehouseCmd, endpointCmd, itemCmd)
}
