package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/dk/internal/cli"
	"github.com/jacksmith/dk/internal/model"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete discounts",
	Long: `Delete one or more discounts.

Deletes run one at a time; a failure does not stop the rest.
Duplicate IDs are deleted once.

Examples:
  dk delete 65f0c1
  dk delete 65f0c1 65f0c2 65f0c3
  dk delete --all --yes`,
	RunE:              runDelete,
	ValidArgsFunction: completeDiscountIDs,
}

var (
	deleteAll bool
	deleteYes bool
)

func init() {
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "delete every discount")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "confirm --all")

	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if deleteAll && len(args) > 0 {
		return &cli.ValidationError{Message: "cannot combine --all with IDs"}
	}
	if deleteAll && !deleteYes {
		return &cli.ValidationError{Message: "--all deletes every discount; pass --yes to confirm"}
	}
	if !deleteAll && len(model.NormalizeIDs(args)) == 0 {
		return &cli.ValidationError{Message: "no discount IDs given"}
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	ids := args
	if deleteAll {
		if err := fetchAll(ctx, sess.store); err != nil {
			return err
		}
		ids = nil
		for _, d := range sess.store.Items() {
			ids = append(ids, d.ID)
		}
		if len(model.NormalizeIDs(ids)) == 0 {
			fmt.Println("No discounts to delete.")
			return nil
		}
	}

	result := sess.store.DeleteMany(ctx, ids)

	table := cli.NewTable()
	for _, id := range result.SuccessIDs {
		table.AddRow(id, cli.Success("deleted"))
	}
	for _, id := range result.FailedIDs {
		table.AddRow(id, cli.Failure("failed: "+result.Failures[id].Error()))
	}
	table.Render(os.Stdout)

	if len(result.FailedIDs) > 0 {
		return &cli.PartialDeleteError{
			Failed: result.FailedIDs,
			Total:  len(result.SuccessIDs) + len(result.FailedIDs),
		}
	}
	return nil
}
