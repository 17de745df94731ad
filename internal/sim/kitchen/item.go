package kitchen

import (
	"sort"

	"pixelcooked.dev/internal/sim/catalogs"
	"pixelcooked.dev/internal/sim/kitchen/logic/geom"
)

type Item struct {
	ID         ItemID
	Box        geom.Box
	Ingredient string
	CanChop    bool
	CanCook    bool
	// Carrier is the player holding the item, 0 when none. The player's Carrying points back.
	Carrier PlayerID
}

// itemArena owns every live item. Stations and players refer to items by id only.
type itemArena struct {
	byID map[ItemID]*Item
	next ItemID
}

func newItemArena() itemArena {
	return itemArena{byID: map[ItemID]*Item{}}
}

func (a *itemArena) add(it Item) *Item {
	a.next++
	it.ID = a.next
	p := &it
	a.byID[it.ID] = p
	return p
}

func (a *itemArena) get(id ItemID) *Item {
	if id == 0 {
		return nil
	}
	return a.byID[id]
}

func (a *itemArena) remove(id ItemID) { delete(a.byID, id) }

func (a *itemArena) clear() { a.byID = map[ItemID]*Item{} }

func (a *itemArena) len() int { return len(a.byID) }

// ids returns live item ids in ascending (creation) order.
func (a *itemArena) ids() []ItemID {
	out := make([]ItemID, 0, len(a.byID))
	for id := range a.byID {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// newItem creates an item of ingredient with its capability flags taken from the catalog.
func (k *Kitchen) newItem(ingredient string, box geom.Box) *Item {
	ing := k.cats.Ingredients
	return k.items.add(Item{
		Box:        box,
		Ingredient: ingredient,
		CanChop:    ing.CanChop(ingredient),
		CanCook:    ing.CanCook(ingredient),
	})
}

// transform replaces it with the result of applying p. The new item keeps the box and gets a
// new id; the old one is destroyed. Missing edges return it unchanged.
func (k *Kitchen) transform(it *Item, p catalogs.Process) *Item {
	to := k.cats.Ingredients.Apply(it.Ingredient, p)
	if to == it.Ingredient {
		return it
	}
	box := it.Box
	k.items.remove(it.ID)
	return k.newItem(to, box)
}
