package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jacksmith/dk/internal/cli"
	"github.com/jacksmith/dk/internal/model"
	"github.com/jacksmith/dk/internal/store"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List discounts",
	Long: `List all discounts in server order.

Filter flags:
  --type    Show only percent or fixed discounts (prefixes like "p" work)

Output flags:
  --json    Print the raw records as JSON`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listType string
	listJSON bool
)

func init() {
	listCmd.Flags().StringVar(&listType, "type", "", "filter by type (percent or fixed)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON")

	listCmd.RegisterFlagCompletionFunc("type", completeTypes)

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	var filter *model.DiscountType
	if listType != "" {
		t, err := resolveType(listType)
		if err != nil {
			return err
		}
		filter = &t
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	if err := fetchAll(commandContext(cmd), sess.store); err != nil {
		return err
	}

	var items []model.Discount
	for _, d := range sess.store.Items() {
		if filter != nil && d.Type.IsPercent() != filter.IsPercent() {
			continue
		}
		items = append(items, d)
	}

	if listJSON {
		if items == nil {
			items = []model.Discount{}
		}
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode discounts: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(items) == 0 {
		fmt.Println("No discounts found.")
		return nil
	}

	table := cli.NewTable(
		cli.Column{},
		cli.Column{},
		cli.Column{AlignRight: true},
		cli.Column{MaxWidth: cli.DefaultMaxNameWidth},
	)
	for i := range items {
		d := &items[i]
		table.AddRow(d.ID, formatType(d.Type), model.FormatValue(d), formatExtra(d.Extra))
	}
	table.Render(os.Stdout)
	return nil
}

// fetchAll loads the discounts into st and turns a recorded failure into
// an error.
func fetchAll(ctx context.Context, st *store.Store) error {
	st.FetchAll(ctx)
	if msg := st.Err(); msg != "" {
		return errors.New(msg)
	}
	return nil
}

func formatType(t model.DiscountType) string {
	switch {
	case t.IsPercent():
		return cli.Accent(string(t))
	case t == "":
		return cli.Muted("fixed")
	case t == model.TypeFixed:
		return string(t)
	}
	return cli.Muted(string(t))
}

// formatExtra renders uninterpreted fields as sorted key=value pairs.
func formatExtra(extra map[string]any) string {
	if len(extra) == 0 {
		return ""
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, extra[k]))
	}
	return cli.Muted(strings.Join(parts, " "))
}
