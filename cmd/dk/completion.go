package main

import (
	"io"
	"os"
	"strings"

	"github.com/jacksmith/dk/internal/model"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate a completion script for bash, zsh or fish.

Discount IDs are completed from the endpoint, so completion needs the
endpoint to be reachable.

  bash:  source <(dk completion bash)
  zsh:   dk completion zsh > "${fpath[1]}/_dk"
  fish:  dk completion fish > ~/.config/fish/completions/dk.fish`,
}

// completionShells maps shell names to script generators.
var completionShells = map[string]func(io.Writer) error{
	"bash": rootCmd.GenBashCompletion,
	"zsh":  rootCmd.GenZshCompletion,
	"fish": func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
}

func init() {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		gen := completionShells[shell]
		completionCmd.AddCommand(&cobra.Command{
			Use:   shell,
			Short: "Generate " + shell + " completion script",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return gen(os.Stdout)
			},
		})
	}
	rootCmd.AddCommand(completionCmd)
}

// completeDiscountIDs completes discount IDs fetched from the endpoint,
// skipping IDs already on the command line.
func completeDiscountIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	sess, err := openSession()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if err := fetchAll(commandContext(cmd), sess.store); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	used := make(map[string]bool, len(args))
	for _, a := range args {
		used[a] = true
	}

	var completions []string
	toCompleteLower := strings.ToLower(toComplete)
	for _, d := range sess.store.Items() {
		if d.ID == "" || used[d.ID] {
			continue
		}
		if strings.HasPrefix(strings.ToLower(d.ID), toCompleteLower) {
			completions = append(completions, d.ID+"\t"+model.FormatValue(&d))
		}
	}

	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeTypes completes discount type names.
func completeTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, name := range model.TypeNames() {
		if strings.HasPrefix(name, strings.ToLower(toComplete)) {
			completions = append(completions, name)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
