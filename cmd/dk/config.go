package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/dk/internal/cli"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration and saved settings",
	Long: `Show where dk keeps its state, the effective configuration and
the settings dk has saved.

Configuration is read from config.yaml in the config directory and can be
overridden with DK_DEFAULT_API_URL, DK_LOG_LEVEL and DK_MAX_RETRIES.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}

	cfg, err := sess.storage.LoadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("Directory:   %s\n", sess.storage.Root())
	fmt.Printf("Config file: %s\n", sess.storage.ConfigPath())
	fmt.Printf("Endpoint:    %s\n", orNotSet(sess.client.BaseURL()))
	fmt.Println()

	table := cli.NewTable()
	table.AddRow("default_api_url", orNotSet(cfg.DefaultAPIURL))
	table.AddRow("log_level", cfg.LogLevel)
	table.AddRow("max_retries", fmt.Sprintf("%d", cfg.MaxRetries))

	keys, err := sess.storage.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		v, _, err := sess.storage.Get(k)
		if err != nil {
			return err
		}
		table.AddRow(k, v)
	}
	table.Render(os.Stdout)
	return nil
}

func orNotSet(s string) string {
	if s == "" {
		return cli.Muted("(not set)")
	}
	return s
}
