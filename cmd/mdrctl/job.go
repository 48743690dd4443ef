package main

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type JobRow struct {
	JobID       string            `json:"job_id"`
	WorkspaceID string            `json:"workspace_id"`
	Lakehouse   string            `json:"lakehouse"`
	EndpointID  string            `json:"endpoint_id,omitempty"`
	Status      string            `json:"status"`
	CreatedAt   string            `json:"created_at"`
	StartedAt   string            `json:"started_at,omitempty"`
	EndedAt     string            `json:"ended_at,omitempty"`
	Error       map[string]string `json:"error,omitempty"`
}

type JobListResponse struct {
	Jobs []JobRow `json:"jobs"`
}

type JobRef struct {
	JobID      string `json:"job_id"`
	Status     string `json:"status"`
	StatusHref string `json:"status_href"`
}

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Refresh job commands (against a running mdr-api)",
}

var jobStartCmd = &cobra.Command{
	Use:   "start <lakehouse>",
	Short: "Submit a refresh job to mdr-api",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		requireWorkspace()
		client := NewClient(apiURL)

		path := fmt.Sprintf("/v1/workspaces/%s/lakehouses/%s/refresh",
			url.PathEscape(workspaceID), url.PathEscape(args[0]))

		var resp JobRef
		if err := client.Post(path, &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Refresh job accepted.\n")
		fmt.Printf("Job ID: %s\n", resp.JobID)
		fmt.Printf("Check status: mdrctl job get %s\n", resp.JobID)
	},
}

var jobListCmd = &cobra.Command{
	Use:   "list",
	Short: "List refresh jobs",
	Run: func(cmd *cobra.Command, args []string) {
		client := NewClient(apiURL)

		var resp JobListResponse
		if err := client.Get("/v1/jobs", &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printResult(resp.Jobs)
	},
}

var jobGetCmd = &cobra.Command{
	Use:   "get <job-id>",
	Short: "Get refresh job details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := NewClient(apiURL)

		var resp JobRow
		if err := client.Get("/v1/jobs/"+args[0], &resp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printResult(resp)
	},
}

var jobWatchCmd = &cobra.Command{
	Use:   "watch <job-id>",
	Short: "Watch a refresh job until completion",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jobID := args[0]
		client := NewClient(apiURL)

		for {
			var resp JobRow
			if err := client.Get("/v1/jobs/"+jobID, &resp); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			fmt.Printf("Job %s: %s\n", jobID[:8], resp.Status)

			if resp.Status == "SUCCEEDED" || resp.Status == "FAILED" || resp.Status == "TIMED_OUT" {
				if resp.Error != nil {
					fmt.Printf("Error: %s - %s\n", resp.Error["code"], resp.Error["message"])
					os.Exit(1)
				}
				break
			}

			time.Sleep(5 * time.Second)
		}
	},
}

func init() {
	jobCmd.AddCommand(jobStartCmd, jobListCmd, jobGetCmd, jobWatchCmd)
	rootCmd.AddCommand(jobCmd)
}
