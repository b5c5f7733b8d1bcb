package tagger

import (
	"fmt"
	"strings"
)

// Policy decides how suggested tags combine with a link's existing tags.
type Policy string

const (
	// PolicyReplace sets the tag set to exactly the suggestion.
	PolicyReplace Policy = "replace"
	// PolicyMerge keeps existing tags and appends new suggestions.
	PolicyMerge Policy = "merge"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyReplace, PolicyMerge:
		return p, nil
	case "":
		return PolicyReplace, nil
	default:
		return "", fmt.Errorf("unknown tag policy %q (want replace or merge)", s)
	}
}

// Apply returns the tag set to write for a link.
func (p Policy) Apply(existing, suggested []string) []string {
	if p != PolicyMerge {
		out := make([]string, len(suggested))
		copy(out, suggested)
		return out
	}

	out := make([]string, 0, len(existing)+len(suggested))
	seen := make(map[string]bool, len(existing)+len(suggested))
	for _, group := range [][]string{existing, suggested} {
		for _, t := range group {
			key := strings.ToLower(t)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, t)
		}
	}
	return out
}
