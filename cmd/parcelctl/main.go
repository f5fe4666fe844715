// Command parcelctl runs single resolutions against the live services and
// prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"parcelgate/internal/app"
	"parcelgate/internal/platform/config"
	"parcelgate/internal/platform/logger"
)

var (
	verbose bool
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "parcelctl",
	Short:         "Resolve cadastral parcels and their zoning from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log upstream calls to stderr")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall operation timeout")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(atCmd)
	rootCmd.AddCommand(siteCmd)
	rootCmd.AddCommand(actCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// build wires the engine for one command. Diagnostics are discarded.
func build(cmd *cobra.Command, withStorage bool) (context.Context, context.CancelFunc, *app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log := slog.New(slog.DiscardHandler)
	if verbose {
		log = logger.New("debug", cfg.Log.Format, cmd.ErrOrStderr())
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	a, err := app.Build(ctx, cfg, log, app.Options{
		SkipStorage: !withStorage,
		Diagnostics: config.BackendNone,
	})
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	return ctx, cancel, a, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
