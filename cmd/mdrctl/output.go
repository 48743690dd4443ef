package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lzjever/fabric-mdr/internal/fabric"
)

func printResult(v interface{}) {
	if output == "json" {
		json.NewEncoder(os.Stdout).Encode(v)
		return
	}
	printTable(v)
}

func printTable(v interface{}) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	switch data := v.(type) {
	case []fabric.Item:
		if len(data) == 0 {
			fmt.Println("No items found.")
			return
		}
		fmt.Fprintln(w, "NAME\tID\tTYPE")
		for _, it := range data {
			fmt.Fprintf(w, "%s\t%s\t%s\n", it.DisplayName, it.ID, it.Type)
		}
	case []JobRow:
		if len(data) == 0 {
			fmt.Println("No jobs found.")
			return
		}
		fmt.Fprintln(w, "JOB ID\tLAKEHOUSE\tSTATUS\tCREATED")
		for _, j := range data {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", j.JobID[:8], j.Lakehouse, j.Status, j.CreatedAt)
		}
	case JobRow:
		fmt.Fprintf(w, "Job ID:\t%s\n", data.JobID)
		fmt.Fprintf(w, "Workspace:\t%s\n", data.WorkspaceID)
		fmt.Fprintf(w, "Lakehouse:\t%s\n", data.Lakehouse)
		if data.EndpointID != "" {
			fmt.Fprintf(w, "Endpoint ID:\t%s\n", data.EndpointID)
		}
		fmt.Fprintf(w, "Status:\t%s\n", data.Status)
		if data.Error != nil {
			fmt.Fprintf(w, "Error:\t%s - %s\n", data.Error["code"], data.Error["message"])
		}
	default:
		json.NewEncoder(os.Stdout).Encode(v)
	}
	w.Flush()
}
