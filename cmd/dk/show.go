package main

import (
	"fmt"
	"sort"

	"github.com/jacksmith/dk/internal/cli"
	"github.com/jacksmith/dk/internal/model"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:               "show <id>",
	Short:             "Show a discount",
	Args:              cobra.ExactArgs(1),
	RunE:              runShow,
	ValidArgsFunction: completeDiscountIDs,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id := args[0]

	sess, err := openSession()
	if err != nil {
		return err
	}

	if err := fetchAll(commandContext(cmd), sess.store); err != nil {
		return err
	}

	d, ok := sess.store.Find(id)
	if !ok {
		return &cli.NotFoundError{ID: id}
	}

	fmt.Printf("ID:     %s\n", d.ID)
	fmt.Printf("Type:   %s\n", formatType(d.Type))
	fmt.Printf("Value:  %s\n", model.FormatValue(&d))

	keys := make([]string, 0, len(d.Extra))
	for k := range d.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s: %v\n", k, d.Extra[k])
	}
	return nil
}
