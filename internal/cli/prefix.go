// Package cli provides CLI infrastructure for dk.
package cli

import (
	"fmt"
	"strings"
)

// MatchPrefix finds the unique choice that s abbreviates.
// An exact match wins over prefix matches. Matching is case-insensitive.
func MatchPrefix(s string, choices []string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("expected one of: %s", strings.Join(choices, ", "))
	}

	for _, c := range choices {
		if strings.ToLower(c) == s {
			return c, nil
		}
	}

	var matches []string
	for _, c := range choices {
		if strings.HasPrefix(strings.ToLower(c), s) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown value %q (expected one of: %s)", s, strings.Join(choices, ", "))
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous value %q matches: %s", s, strings.Join(matches, ", "))
	}
}
