// Package scope restricts lists of team-tagged items to the teams a caller may view.
package scope

import "strings"

// Set is an upper-cased set of team tags.
type Set map[string]struct{}

func isSeparator(r rune) bool {
	switch r {
	case ',', ';', '|', ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// ParseSet splits a raw scope string on runs of ",;|" and whitespace.
func ParseSet(raw string) Set {
	set := Set{}
	for _, tok := range strings.FieldsFunc(raw, isSeparator) {
		set[strings.ToUpper(tok)] = struct{}{}
	}
	return set
}

// Allows reports whether an item tagged with team is visible.
// Untagged items are always visible, as is everything under an empty set.
func (s Set) Allows(team string) bool {
	team = strings.TrimSpace(team)
	if len(s) == 0 || team == "" {
		return true
	}
	_, ok := s[strings.ToUpper(team)]
	return ok
}

// Filter keeps the items whose team is allowed by scopeRaw, preserving order.
func Filter[T any](scopeRaw string, items []T, team func(T) string) []T {
	set := ParseSet(scopeRaw)
	if len(set) == 0 {
		return items
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		if set.Allows(team(it)) {
			out = append(out, it)
		}
	}
	return out
}
