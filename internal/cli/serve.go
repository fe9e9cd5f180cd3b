package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/storyweave/storyweave/internal/logging"
	"github.com/storyweave/storyweave/internal/web"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI",
		Run:   runServe,
	}

	cmd.Flags().StringP("addr", "a", "", "Listen address (default: $STORYWEAVE_LISTEN_ADDR or :3000)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")

	svc, cfg, err := newService()
	if err != nil {
		exitErr("configuration", err)
	}
	if addr == "" {
		addr = cfg.ListenAddr
	}

	log := logging.New(cfg.LogLevel)
	server := web.NewServer(svc, log)

	log.Info().Str("addr", addr).Str("backend", cfg.BackendURL).Msg("serving web UI")
	fmt.Printf("Serving on %s (backend %s)\n", addr, cfg.BackendURL)

	if err := http.ListenAndServe(addr, server); err != nil {
		exitErr("serve", err)
	}
}
