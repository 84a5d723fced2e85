package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidType is returned when a discount type cannot be parsed.
var ErrInvalidType = errors.New("invalid discount type")

// typeAliases maps accepted spellings to discount types.
var typeAliases = map[string]DiscountType{
	"percent": TypePercent,
	"%":       TypePercent,
	"fixed":   TypeFixed,
	"nominal": TypeFixed,
}

// TypeNames returns the spellings accepted by ParseType, excluding symbols.
func TypeNames() []string {
	return []string{"percent", "fixed", "nominal"}
}

// ParseType parses a discount type name. Matching is case-insensitive.
func ParseType(s string) (DiscountType, error) {
	t, ok := typeAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q (expected percent or fixed)", ErrInvalidType, s)
	}
	return t, nil
}

// NormalizeIDs trims identifiers, drops empty ones and removes duplicates.
// The first occurrence of each identifier keeps its position.
func NormalizeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
