// Package cli implements the storyweave CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/storyweave/storyweave/internal/cache"
	"github.com/storyweave/storyweave/internal/client"
	"github.com/storyweave/storyweave/internal/config"
	"github.com/storyweave/storyweave/internal/logging"
)

var (
	backendFlag string
	formatFlag  string
	timeoutFlag time.Duration
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "storyweave",
	Short: "Client for the interactive story service",
	Long:  "Create AI-generated interactive stories, browse them, and append your own continuations. All generation happens on the backend; this is a thin, cache-aware client.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&backendFlag, "backend", "b", "", "Backend base URL (default: $STORYWEAVE_BACKEND_URL or http://localhost:8000)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
	RootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "Request timeout (default: $STORYWEAVE_REQUEST_TIMEOUT or 30s)")
}

// newService builds the cached service from config and flags. The cache store
// lives for the process; each CLI invocation is one process.
func newService() (*client.Service, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}
	if backendFlag != "" {
		cfg.BackendURL = backendFlag
	}
	if timeoutFlag > 0 {
		cfg.RequestTimeout = timeoutFlag
	}

	c := client.New(client.Config{
		BaseURL:           cfg.BackendURL,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logging.New(cfg.LogLevel),
	})

	return client.NewService(c, cache.NewStore()), cfg, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}
