package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Run:   runHealth,
	}

	RootCmd.AddCommand(cmd)
}

func runHealth(cmd *cobra.Command, args []string) {
	svc, cfg, err := newService()
	if err != nil {
		exitErr("configuration", err)
	}

	if err := svc.Health(cmd.Context()); err != nil {
		exitErr("health check", err)
	}

	fmt.Printf("Backend at %s is healthy.\n", cfg.BackendURL)
}
