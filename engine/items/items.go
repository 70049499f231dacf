// Package items holds the fixed item catalog and the single dispatcher
// that resolves an item's effect against the shared game state.
package items

import (
	"fmt"

	"github.com/nathoo/tuberoulette/types"
)

// Item is an immutable catalog entry.
type Item struct {
	ID      types.ItemID
	Name    string
	Desc    string
	Aliases []string // extra words accepted from human input
}

var catalog = map[types.ItemID]Item{
	types.ItemMagnifyingGlass: {
		ID: types.ItemMagnifyingGlass, Name: "Magnifying Glass",
		Desc:    "Reveal the chambered shell to yourself.",
		Aliases: []string{"glass", "magnifier", "mag", "lens"},
	},
	types.ItemBeer: {
		ID: types.ItemBeer, Name: "Beer",
		Desc:    "Rack the shotgun: eject the chambered shell without firing.",
		Aliases: []string{"rack"},
	},
	types.ItemHandcuffs: {
		ID: types.ItemHandcuffs, Name: "Handcuffs",
		Desc:    "Your opponent skips their next turn.",
		Aliases: []string{"cuffs"},
	},
	types.ItemHandSaw: {
		ID: types.ItemHandSaw, Name: "Hand Saw",
		Desc:    "Your next live shot this turn deals double damage.",
		Aliases: []string{"saw", "handsaw"},
	},
	types.ItemInverter: {
		ID: types.ItemInverter, Name: "Inverter",
		Desc:    "Flip the chambered shell: live becomes blank, blank becomes live.",
		Aliases: []string{"flip", "invert"},
	},
	types.ItemBurnerPhone: {
		ID: types.ItemBurnerPhone, Name: "Burner Phone",
		Desc:    "A voice reveals one random shell further down the tube.",
		Aliases: []string{"phone", "burner"},
	},
	types.ItemCigarette: {
		ID: types.ItemCigarette, Name: "Cigarette",
		Desc:    "Heal 1 HP (cannot overheal).",
		Aliases: []string{"cig", "smoke", "cigarettes"},
	},
	types.ItemAdrenaline: {
		ID: types.ItemAdrenaline, Name: "Adrenaline",
		Desc:    "Steal one of your opponent's items and use it immediately.",
		Aliases: []string{"adren", "steal", "syringe"},
	},
}

// Lookup returns the catalog entry for id.
func Lookup(id types.ItemID) (Item, bool) {
	it, ok := catalog[id]
	return it, ok
}

// Name returns the display name of id, or a placeholder for unknown ids.
func Name(id types.ItemID) string {
	if it, ok := catalog[id]; ok {
		return it.Name
	}
	return fmt.Sprintf("item#%d", int(id))
}

// Catalog returns every item in catalog order.
func Catalog() []Item {
	out := make([]Item, 0, len(types.AllItems))
	for _, id := range types.AllItems {
		out = append(out, catalog[id])
	}
	return out
}

// Names returns the display names of ids, in order.
func Names(ids []types.ItemID) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, Name(id))
	}
	return names
}
