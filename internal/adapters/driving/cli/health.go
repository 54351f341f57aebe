package cli

import (
	"context"
	"errors"
	"sort"

	"github.com/spf13/cobra"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Probes the backend health endpoint and prints per-service status.`,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if healthService == nil {
		return errors.New("health service not configured")
	}

	status := healthService.Probe(context.Background())

	switch status {
	case domain.StatusOnline:
		cmd.Println("Backend: online")
	case domain.StatusOffline:
		cmd.Println("Backend: offline")
		return errors.New("backend is not reachable")
	default:
		cmd.Println("Backend: checking")
	}

	report := healthService.Report()
	if report == nil || len(report.Services) == 0 {
		return nil
	}

	names := make([]string, 0, len(report.Services))
	for name := range report.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	cmd.Println()
	for _, name := range names {
		cmd.Printf("  %-12s %s\n", name, report.Services[name])
	}

	return nil
}
