// Package resolve maps item names from parsed intents to held items.
package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/tuberoulette/engine/items"
	"github.com/nathoo/tuberoulette/types"
)

// AmbiguityError indicates multiple held items matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no held item matched a name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("you don't have %q", e.Name)
}

// Item maps a query to an item in inventory. The query may be a 1-based
// inventory number, a full name, one word of a name, an alias, or a
// prefix of any of those. Tiers are tried in that order and the first
// tier with a match wins.
func Item(inventory []types.ItemID, query string) (types.ItemID, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(query)); err == nil {
		if n < 1 || n > len(inventory) {
			return types.ItemNone, &NotFoundError{Name: query}
		}
		return inventory[n-1], nil
	}

	q := normalize(query)
	if q == "" {
		return types.ItemNone, &NotFoundError{Name: query}
	}

	held := distinct(inventory)
	tiers := []func(items.Item, string) bool{
		matchesName,
		matchesWord,
		matchesAlias,
		matchesPrefix,
	}
	for _, match := range tiers {
		var matches []types.ItemID
		for _, id := range held {
			it, ok := items.Lookup(id)
			if !ok {
				continue
			}
			if match(it, q) {
				matches = append(matches, id)
			}
		}
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return types.ItemNone, &AmbiguityError{Name: query, Candidates: items.Names(matches)}
		}
	}
	return types.ItemNone, &NotFoundError{Name: query}
}

// matchesName checks the full display name, with or without spaces.
// e.g. "hand saw" and "handsaw" both match "Hand Saw".
func matchesName(it items.Item, q string) bool {
	name := strings.ToLower(it.Name)
	return name == q || strings.ReplaceAll(name, " ", "") == q
}

// matchesWord checks any single word of the name.
// e.g. "phone" matches "Burner Phone".
func matchesWord(it items.Item, q string) bool {
	for _, word := range strings.Fields(strings.ToLower(it.Name)) {
		if word == q {
			return true
		}
	}
	return false
}

func matchesAlias(it items.Item, q string) bool {
	for _, a := range it.Aliases {
		if a == q {
			return true
		}
	}
	return false
}

// matchesPrefix needs at least two letters so "h" is never a choice.
func matchesPrefix(it items.Item, q string) bool {
	if len(q) < 2 {
		return false
	}
	if strings.HasPrefix(strings.ToLower(it.Name), q) {
		return true
	}
	for _, word := range strings.Fields(strings.ToLower(it.Name)) {
		if strings.HasPrefix(word, q) {
			return true
		}
	}
	for _, a := range it.Aliases {
		if strings.HasPrefix(a, q) {
			return true
		}
	}
	return false
}

// normalize lowercases, collapses whitespace, and treats "_" and "-" as spaces.
func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// distinct returns ids in first-seen order without repeats.
func distinct(ids []types.ItemID) []types.ItemID {
	seen := map[types.ItemID]bool{}
	out := make([]types.ItemID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
