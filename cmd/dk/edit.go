package main

import (
	"fmt"

	"github.com/jacksmith/dk/internal/cli"
	"github.com/jacksmith/dk/internal/model"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a discount",
	Long: `Update a discount's fields.

Use flags to change specific fields, or -i to edit in $EDITOR.
Fields that are not given keep their current value.

Examples:
  dk edit 65f0c1 --value=20
  dk edit 65f0c1 --type=fixed --value=5000
  dk edit 65f0c1 --set name="Ramadan"
  dk edit 65f0c1 -i`,
	Args:              cobra.ExactArgs(1),
	RunE:              runEdit,
	ValidArgsFunction: completeDiscountIDs,
}

var (
	editType        string
	editValue       float64
	editSet         []string
	editInteractive bool
)

func init() {
	editCmd.Flags().StringVarP(&editType, "type", "t", "", "set discount type (percent or fixed)")
	editCmd.Flags().Float64VarP(&editValue, "value", "V", 0, "set value")
	editCmd.Flags().StringArrayVar(&editSet, "set", nil, "set extra field as key=value (can be repeated)")
	editCmd.Flags().BoolVarP(&editInteractive, "interactive", "i", false, "edit in $EDITOR")

	editCmd.RegisterFlagCompletionFunc("type", completeTypes)

	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id := args[0]
	valueSet := cmd != nil && cmd.Flags().Changed("value")

	sess, err := openSession()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if err := fetchAll(ctx, sess.store); err != nil {
		return err
	}

	current, ok := sess.store.Find(id)
	if !ok {
		return &cli.NotFoundError{ID: id}
	}

	var p model.Payload
	if editInteractive {
		var changed bool
		p, changed, err = editPayloadInteractive(current)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Println("No changes.")
			return nil
		}
	} else {
		p, err = payloadFromFlags(current, valueSet)
		if err != nil {
			return err
		}
	}

	if err := validatePayload(p); err != nil {
		return err
	}

	if err := sess.store.Update(ctx, id, p); err != nil {
		return fmt.Errorf("failed to update %s: %w", id, err)
	}

	updated, _ := sess.store.Find(id)
	fmt.Printf("%s updated: %s\n", id, model.FormatValue(&updated))
	return nil
}

// payloadFromFlags overlays the edit flags on the current record.
func payloadFromFlags(current model.Discount, valueSet bool) (model.Payload, error) {
	p := current.Payload()
	changed := false

	if editType != "" {
		t, err := resolveType(editType)
		if err != nil {
			return p, err
		}
		p.Type = t
		changed = true
	}
	if valueSet {
		p.Value = editValue
		changed = true
	}
	extra, err := parseSetFlags(editSet)
	if err != nil {
		return p, err
	}
	for k, v := range extra {
		if p.Extra == nil {
			p.Extra = make(map[string]any)
		}
		p.Extra[k] = v
		changed = true
	}

	if !changed {
		return p, &cli.ValidationError{Message: "nothing to update (use --type, --value, --set or -i)"}
	}
	return p, nil
}

// editPayloadInteractive opens the record's writable fields in $EDITOR.
func editPayloadInteractive(current model.Discount) (model.Payload, bool, error) {
	header := fmt.Sprintf("Editing discount %s\nSave and close editor to apply changes. Exit without saving to cancel.", current.ID)

	var edited model.Payload
	changed, err := cli.EditYAML(header, current.Payload(), &edited)
	if err != nil || !changed {
		return model.Payload{}, false, err
	}

	if edited.Type == "" {
		return model.Payload{}, false, &cli.ValidationError{Field: "type", Message: "must not be empty"}
	}
	t, err := resolveType(string(edited.Type))
	if err != nil {
		return model.Payload{}, false, err
	}
	edited.Type = t
	return edited, true, nil
}
