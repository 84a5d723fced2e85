package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacksmith/dk/internal/cli"
	"github.com/jacksmith/dk/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a discount",
	Long: `Create a discount. The server assigns its ID.

Examples:
  dk add --type=percent --value=15
  dk add --type=fixed --value=12000
  dk add -t p -V 10 --set name="Weekend promo"`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var (
	addType  string
	addValue float64
	addSet   []string
)

func init() {
	addCmd.Flags().StringVarP(&addType, "type", "t", "", "discount type (percent or fixed)")
	addCmd.Flags().Float64VarP(&addValue, "value", "V", 0, "percentage or rupiah amount")
	addCmd.Flags().StringArrayVar(&addSet, "set", nil, "extra field as key=value (can be repeated)")
	addCmd.MarkFlagRequired("type")
	addCmd.MarkFlagRequired("value")

	addCmd.RegisterFlagCompletionFunc("type", completeTypes)

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	typ, err := resolveType(addType)
	if err != nil {
		return err
	}
	extra, err := parseSetFlags(addSet)
	if err != nil {
		return err
	}

	p := model.Payload{Type: typ, Value: addValue, Extra: extra}
	if err := validatePayload(p); err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}

	created, err := sess.store.Create(commandContext(cmd), p)
	if err != nil {
		return fmt.Errorf("failed to create discount: %w", err)
	}

	fmt.Printf("%s %s created.\n", created.ID, model.FormatValue(&created))
	return nil
}

// resolveType parses a --type value, accepting unambiguous prefixes.
func resolveType(s string) (model.DiscountType, error) {
	if t, err := model.ParseType(s); err == nil {
		return t, nil
	}
	name, err := cli.MatchPrefix(s, model.TypeNames())
	if err != nil {
		return "", &cli.ValidationError{Field: "type", Message: err.Error()}
	}
	return model.ParseType(name)
}

// validatePayload rejects values no discount can have.
func validatePayload(p model.Payload) error {
	if p.Value < 0 {
		return &cli.ValidationError{Field: "value", Message: "must not be negative"}
	}
	if p.Type.IsPercent() && p.Value > 100 {
		return &cli.ValidationError{Field: "value", Message: "percent discounts cannot exceed 100"}
	}
	return nil
}

// parseSetFlags turns key=value pairs into extra fields. Numbers and
// booleans are stored as such; everything else is a string.
func parseSetFlags(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	extra := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &cli.ValidationError{Field: "--set", Message: fmt.Sprintf("%q is not key=value", pair)}
		}
		switch key {
		case "_id", "id", "type", "value":
			return nil, &cli.ValidationError{Field: "--set", Message: fmt.Sprintf("%q cannot be set this way", key)}
		}
		extra[key] = parseScalar(value)
	}
	return extra, nil
}

func parseScalar(s string) any {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
