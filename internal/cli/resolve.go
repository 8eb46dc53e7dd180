package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/alexanderramin/planboard/internal/service"
)

// resolveActivityID accepts a full id, an id without its act- prefix, or
// a unique prefix of either.
func resolveActivityID(app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("activity ID is required")
	}
	ids := slices.Sorted(maps.Keys(app.Store.Plan().Activities))

	// 1. Exact match, with or without the prefix
	for _, id := range ids {
		if id == input || id == "act-"+input {
			return id, nil
		}
	}

	// 2. Prefix match
	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) || strings.HasPrefix(strings.TrimPrefix(id, "act-"), input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("activity %q: %w", input, service.ErrActivityNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("activity ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveActivityIDs resolves every input, stopping at the first failure.
func resolveActivityIDs(app *App, inputs []string) ([]string, error) {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		id, err := resolveActivityID(app, in)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// resolveCategoryID accepts a category id or a case-insensitive name. The
// empty string and "none" mean uncategorized.
func resolveCategoryID(app *App, input string) (string, error) {
	if input == "" || strings.EqualFold(input, "none") {
		return "", nil
	}
	categories := app.Store.Categories()
	for _, c := range categories {
		if c.ID == input {
			return c.ID, nil
		}
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, input) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("category not found: %q", input)
}
