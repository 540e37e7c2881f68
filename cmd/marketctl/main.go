// Package main is marketctl, a developer CLI over the same façade the API
// serves: probe candidate routes, run recommendations, dump the dashboard.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"campus_market/internal/adapters/observability"
	"campus_market/internal/shared"
)

var cfg shared.Config

var rootCmd = &cobra.Command{
	Use:   "marketctl",
	Short: "Inspect the campus market backend through the fallback-aware client",
	Long: `marketctl talks to BACKEND_BASE_URL through the same candidate-route
executor and fallback catalog as the API. Configuration comes from the
environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = shared.Load()
		if base, _ := cmd.Flags().GetString("base"); base != "" {
			cfg.BackendBase = base
		}
		level := cfg.LogLevel
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			level = "debug"
		}
		// CLI logs go to stderr so stdout stays machine readable
		log.Logger = observability.NewLogger("dev", level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("base", "", "backend base URL (overrides BACKEND_BASE_URL)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
