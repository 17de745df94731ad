package kitchen

import (
	"pixelcooked.dev/internal/observerproto"
	"pixelcooked.dev/internal/protocol"
	"pixelcooked.dev/internal/sim/kitchen/logic/timefmt"
)

// Frame is the read-only projection of the current state sent to displays and observers.
// Not safe concurrently with Run; Run delivers frames through the frame sink instead.
func (k *Kitchen) Frame() observerproto.FrameMsg {
	ing := k.cats.Ingredients
	f := observerproto.FrameMsg{
		Type:            protocol.TypeFrame,
		ProtocolVersion: observerproto.Version,
		Tick:            k.tick.Load(),
		RemainingMs:     k.remainingMs,
		Clock:           timefmt.MsToTime(k.remainingMs),
		Score:           k.score,
		Over:            k.over,
		Stations:        make([]observerproto.StationState, 0, len(k.stations)),
		Players:         make([]observerproto.PlayerState, 0, len(k.players)),
		Items:           make([]observerproto.ItemState, 0, k.items.len()),
		Orders:          make([]observerproto.OrderState, 0, len(k.orders)),
		Stock:           make([]observerproto.StockEntry, 0, len(k.stock)),
	}
	for _, s := range k.stations {
		f.Stations = append(f.Stations, observerproto.StationState{
			ID:         uint32(s.ID),
			Row:        s.Cell.Row,
			Col:        s.Cell.Col,
			Kind:       s.Kind.String(),
			Box:        s.Box.Array(),
			Dispenses:  s.Dispenses,
			Held:       uint32(s.Held),
			TimerMs:    s.TimerMs,
			MaxTimerMs: s.MaxTimerMs,
		})
	}
	for _, p := range k.players {
		f.Players = append(f.Players, observerproto.PlayerState{
			ID:       int(p.ID),
			Box:      p.Box.Array(),
			Facing:   p.Facing.String(),
			Carrying: uint32(p.Carrying),
			Color:    p.Color,
		})
	}
	for _, id := range k.items.ids() {
		it := k.items.byID[id]
		f.Items = append(f.Items, observerproto.ItemState{
			ID:         uint32(it.ID),
			Ingredient: it.Ingredient,
			Box:        it.Box.Array(),
			Carrier:    int(it.Carrier),
			Color:      ing.Color(it.Ingredient),
		})
	}
	for _, o := range k.orders {
		f.Orders = append(f.Orders, observerproto.OrderState{Name: o.Name, Requires: append([]string{}, o.Requires...)})
	}
	for i, n := range k.stock {
		f.Stock = append(f.Stock, observerproto.StockEntry{Ingredient: ing.Palette[i], Count: n})
	}
	return f
}

// Bootstrap describes the round for a joining observer. It only reads immutable state and
// the atomic tick, so it may be called while Run is active.
func (k *Kitchen) Bootstrap() observerproto.BootstrapResponse {
	ing := k.cats.Ingredients
	palette := make([]observerproto.PaletteEntry, 0, len(ing.Palette))
	for _, id := range ing.Palette {
		palette = append(palette, observerproto.PaletteEntry{ID: id, Color: ing.Color(id)})
	}
	return observerproto.BootstrapResponse{
		ProtocolVersion: observerproto.Version,
		RoundID:         k.cfg.RoundID,
		Tick:            k.tick.Load(),
		Players:         k.cfg.Players,
		Rows:            k.cfg.Rows(),
		Cols:            k.cfg.Cols(),
		CellLength:      k.cfg.CellLength(),
		TickMs:          k.cfg.TickMs,
		RoundMs:         k.cfg.RoundMs,
		Palette:         palette,
	}
}
