package kitchen

import (
	"pixelcooked.dev/internal/sim/kitchen/logic/geom"
)

// ---- Debug/Test Helpers ----
//
// These let black-box tests in sibling packages (internal/sim/kitchentest) set up
// preconditions without reaching into kitchen internals.
//
// They are NOT safe to call concurrently with Run(). Use them only in tests that drive the
// kitchen via StepOnce(), from a single goroutine.

// DebugPlacePlayer centres player id in cell c with the given facing and zero velocity.
func (k *Kitchen) DebugPlacePlayer(id PlayerID, c Cell, facing Direction) bool {
	p := k.player(id)
	if p == nil || !k.layout.InBounds(c) || k.stationAt[c] != nil {
		return false
	}
	p.Box = k.cellBox(c, k.cfg.PlayerRatio)
	p.Facing = facing
	p.VX, p.VY = 0, 0
	if it := k.items.get(p.Carrying); it != nil {
		k.seat(p, it)
	}
	return true
}

// DebugSetPlayerBox moves player id to an exact box. Overlaps are not checked.
func (k *Kitchen) DebugSetPlayerBox(id PlayerID, b geom.Box) bool {
	p := k.player(id)
	if p == nil {
		return false
	}
	p.Box = b
	return true
}

// DebugSpawnItem drops a loose ingredient centred in cell c.
func (k *Kitchen) DebugSpawnItem(ingredient string, c Cell) (ItemID, bool) {
	if !k.cats.Ingredients.Has(ingredient) || !k.layout.InBounds(c) {
		return 0, false
	}
	it := k.newItem(ingredient, k.cellBox(c, k.cfg.IngredientRatio))
	return it.ID, true
}

// DebugGiveItem puts a new ingredient in player id's hands.
func (k *Kitchen) DebugGiveItem(id PlayerID, ingredient string) (ItemID, bool) {
	p := k.player(id)
	if p == nil || p.Carrying != 0 || !k.cats.Ingredients.Has(ingredient) {
		return 0, false
	}
	it := k.newItem(ingredient, k.cellBox(Cell{}, k.cfg.IngredientRatio))
	k.pickUp(p, it)
	return it.ID, true
}

// DebugPutOnStation makes the station at c hold a new ingredient, bypassing its receive rule.
func (k *Kitchen) DebugPutOnStation(c Cell, ingredient string) (ItemID, bool) {
	s := k.stationAt[c]
	if s == nil || s.Held != 0 || !k.cats.Ingredients.Has(ingredient) {
		return 0, false
	}
	it := k.newItem(ingredient, k.centredOn(s, k.cfg.IngredientRatio*s.Box.Width()))
	s.Held = it.ID
	return it.ID, true
}

func (k *Kitchen) DebugSetRemainingMs(ms int) {
	k.remainingMs = max(ms, 0)
}

// DebugSetOrders replaces the order queue. It must hold OrderQueueLen orders to keep the
// queue invariant; shorter or longer lists are rejected.
func (k *Kitchen) DebugSetOrders(orders []Order) bool {
	if len(orders) != OrderQueueLen {
		return false
	}
	k.orders = append([]Order(nil), orders...)
	return true
}

func (k *Kitchen) DebugSetStock(ingredient string, n int) bool {
	idx, ok := k.cats.Ingredients.Index[ingredient]
	if !ok || n < 0 {
		return false
	}
	k.stock[idx] = n
	return true
}

func (k *Kitchen) DebugStock(ingredient string) int {
	idx, ok := k.cats.Ingredients.Index[ingredient]
	if !ok {
		return 0
	}
	return k.stock[idx]
}

func (k *Kitchen) DebugOrders() []Order {
	return append([]Order(nil), k.orders...)
}

func (k *Kitchen) DebugPlayer(id PlayerID) (Player, bool) {
	p := k.player(id)
	if p == nil {
		return Player{}, false
	}
	return *p, true
}

func (k *Kitchen) DebugItem(id ItemID) (Item, bool) {
	it := k.items.get(id)
	if it == nil {
		return Item{}, false
	}
	return *it, true
}

func (k *Kitchen) DebugItemCount() int { return k.items.len() }

func (k *Kitchen) DebugStation(c Cell) (Station, bool) {
	s := k.stationAt[c]
	if s == nil {
		return Station{}, false
	}
	return *s, true
}

func (k *Kitchen) DebugStateDigest() string { return k.stateDigest(k.tick.Load()) }
