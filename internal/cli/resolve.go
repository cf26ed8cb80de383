package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveReagentID resolves a reagent reference which can be:
//   - An exact name (case-insensitive)
//   - A full UUID
//   - A UUID prefix
func resolveReagentID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("reagent name or ID is required")
	}

	reagents, err := app.Reagents.List(ctx)
	if err != nil {
		return "", err
	}

	// 1. Exact name match (case-insensitive)
	for _, r := range reagents {
		if strings.EqualFold(r.Name, input) {
			return r.ID, nil
		}
	}

	// 2. Exact UUID match
	for _, r := range reagents {
		if r.ID == input {
			return r.ID, nil
		}
	}

	// 3. UUID prefix match
	var matches []string
	for _, r := range reagents {
		if strings.HasPrefix(r.ID, input) {
			matches = append(matches, r.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("reagent not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("reagent ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
