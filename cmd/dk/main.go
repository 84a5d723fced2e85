// Package main is the entry point for the dk CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jacksmith/dk/internal/cli"
	"github.com/jacksmith/dk/internal/logger"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// DefaultAPIURL is the discount endpoint used until another one is set
// with `dk url`. Set at build time via
// -ldflags "-X main.DefaultAPIURL=https://crudcrud.com/api/<key>/discounts".
var DefaultAPIURL = ""

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dk",
	Short: "dk - manage discount records",
	Long: `dk manages discount records stored behind a hosted REST endpoint.

Discounts are either a percentage ("percent") or a fixed rupiah amount
("fixed"). Use "dk url" to point dk at your endpoint; the URL is
remembered between runs.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	// Show help when no subcommand is provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var (
	flagAPIURL    string
	flagConfigDir string
	flagVerbose   bool
)

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("dk version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "use this endpoint for one command without saving it")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "state directory (default $DK_CONFIG_DIR or the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log HTTP requests to stderr")
}
