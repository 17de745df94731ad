package kitchen

import (
	"pixelcooked.dev/internal/sim/kitchen/logic/geom"
)

type Station struct {
	ID   StationID
	Cell Cell
	Box  geom.Box
	Kind StationKind

	// Dispenses is the ingredient a crate hands out on every removal.
	Dispenses string

	Held ItemID

	// Processing stations only.
	TimerMs    int
	MaxTimerMs int
}

func (s *Station) processing() bool {
	_, ok := s.Kind.Process()
	return ok
}

// stationBehaviour is the per-kind receive/remove pair. receive takes an item the player has
// already let go of; remove returns the item handed to the player, or nil.
type stationBehaviour struct {
	receive func(k *Kitchen, s *Station, it *Item)
	remove  func(k *Kitchen, s *Station) *Item
}

var behaviours = map[StationKind]stationBehaviour{
	KindPlaceholder: {receive: receiveNothing, remove: removeHeld},
	KindPlain:       {receive: receiveHold, remove: removeHeld},
	KindCrate:       {receive: receiveNothing, remove: removeFromCrate},
	KindChopping:    {receive: receiveHold, remove: removeAndReset},
	KindCooking:     {receive: receiveHold, remove: removeAndReset},
	KindTrash:       {receive: receiveDestroy, remove: removeNothing},
	KindServing:     {receive: receiveServe, remove: removeNothing},
}

func (k *Kitchen) receive(s *Station, it *Item) { behaviours[s.Kind].receive(k, s, it) }
func (k *Kitchen) remove(s *Station) *Item      { return behaviours[s.Kind].remove(k, s) }

func receiveNothing(*Kitchen, *Station, *Item) {}

// receiveHold keeps the item when the station is empty. Either way the item is centred on the
// station, so a second item rests loose on top.
func receiveHold(k *Kitchen, s *Station, it *Item) {
	if s.Held == 0 {
		s.Held = it.ID
	}
	it.Box = k.centredOn(s, it.Box.Width())
}

func receiveDestroy(k *Kitchen, _ *Station, it *Item) {
	k.items.remove(it.ID)
}

func receiveServe(k *Kitchen, _ *Station, it *Item) {
	k.deliver(it.Ingredient)
	k.items.remove(it.ID)
}

func removeHeld(k *Kitchen, s *Station) *Item {
	it := k.items.get(s.Held)
	s.Held = 0
	return it
}

func removeAndReset(k *Kitchen, s *Station) *Item {
	s.TimerMs = s.MaxTimerMs
	return removeHeld(k, s)
}

func removeFromCrate(k *Kitchen, s *Station) *Item {
	size := k.cfg.IngredientRatio * s.Box.Width()
	return k.newItem(s.Dispenses, k.centredOn(s, size))
}

func removeNothing(*Kitchen, *Station) *Item { return nil }

// centredOn returns a size x size box centred on s.
func (k *Kitchen) centredOn(s *Station, size float64) geom.Box {
	inset := (s.Box.Width() - size) / 2
	return geom.Square(s.Box.X1+inset, s.Box.Y1+inset, size)
}
