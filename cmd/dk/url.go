package main

import (
	"fmt"

	"github.com/jacksmith/dk/internal/api"
	"github.com/jacksmith/dk/internal/cli"
	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url [<new-url>]",
	Short: "Show or change the discount endpoint",
	Long: `Show the active discount endpoint, or replace it.

The new URL is trimmed of whitespace and trailing slashes and saved in
the config directory, so later commands use it too.

Use --reset to forget the saved URL and go back to the default.

Examples:
  dk url
  dk url https://crudcrud.com/api/0123abcd/discounts
  dk url --reset`,
	Args: cobra.MaximumNArgs(1),
	RunE: runURL,
}

var urlReset bool

func init() {
	urlCmd.Flags().BoolVar(&urlReset, "reset", false, "forget the saved URL")

	rootCmd.AddCommand(urlCmd)
}

func runURL(cmd *cobra.Command, args []string) error {
	if (len(args) == 1 || urlReset) && flagAPIURL != "" {
		return &cli.ValidationError{Message: "cannot change the saved URL while --api-url is set"}
	}
	if len(args) == 1 && urlReset {
		return &cli.ValidationError{Message: "cannot combine --reset with a URL"}
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	if urlReset {
		if err := sess.storage.Delete(api.BaseURLKey); err != nil {
			return err
		}
		fmt.Println("Saved discount endpoint removed.")
		return nil
	}

	if len(args) == 0 {
		current := sess.client.BaseURL()
		if current == "" {
			fmt.Println(cli.Muted("(not set)"))
			return nil
		}
		fmt.Println(current)
		return nil
	}

	if err := sess.client.SetBaseURL(args[0]); err != nil {
		return err
	}
	if sess.client.BaseURL() == "" {
		fmt.Println("Discount endpoint cleared.")
		return nil
	}
	fmt.Printf("Discount endpoint set to %s\n", sess.client.BaseURL())
	return nil
}
