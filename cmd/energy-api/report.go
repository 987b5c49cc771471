package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print an owner's dashboard as JSON",
	Long:  `Compute the dashboard for one owner from the configured store and write it to stdout.`,
	RunE:  runReport,
}

var reportOwner string

func init() {
	reportCmd.Flags().StringVar(&reportOwner, "owner", "", "Owner id to report on")
	_ = reportCmd.MarkFlagRequired("owner")
}

func runReport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	dashboard, err := a.insights.Dashboard(cmd.Context(), reportOwner)
	if err != nil {
		return fmt.Errorf("failed to build dashboard: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(dashboard)
}
