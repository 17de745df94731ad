package kitchentest

import (
	"testing"

	"pixelcooked.dev/internal/sim/catalogs"
	"pixelcooked.dev/internal/sim/kitchen"
	"pixelcooked.dev/internal/sim/kitchen/logic/mapgen"
)

// Harness is a small black-box helper for driving a kitchen via exported APIs:
// - Step()/Press()/Release()/Tap() feed input events through StepOnce()
// - Debug* helpers on the kitchen provide deterministic preconditions
//
// It avoids kitchen internals so tests can live outside the kitchen package.
type Harness struct {
	T    *testing.T
	Cats *catalogs.Catalogs
	K    *kitchen.Kitchen

	LastTick   uint64
	LastDigest string
}

func NewHarness(t *testing.T, cfg kitchen.KitchenConfig, cats *catalogs.Catalogs) *Harness {
	t.Helper()
	k, err := kitchen.New(cfg, cats)
	if err != nil {
		t.Fatalf("kitchen.New: %v", err)
	}
	return &Harness{T: t, Cats: cats, K: k}
}

// NewHarnessWithLayout builds the kitchen on a fixed layout, so station cells are known.
func NewHarnessWithLayout(t *testing.T, cfg kitchen.KitchenConfig, cats *catalogs.Catalogs, layout mapgen.Layout) *Harness {
	t.Helper()
	k, err := kitchen.NewWithLayout(cfg, cats, layout)
	if err != nil {
		t.Fatalf("kitchen.NewWithLayout: %v", err)
	}
	return &Harness{T: t, Cats: cats, K: k}
}

// DefaultCatalogs loads the embedded catalogues or fails the test.
func DefaultCatalogs(t *testing.T) *catalogs.Catalogs {
	t.Helper()
	cats, err := catalogs.LoadDefault()
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return cats
}

func (h *Harness) Step(inputs ...kitchen.InputEvent) string {
	h.T.Helper()
	h.LastTick, h.LastDigest = h.K.StepOnce(inputs)
	return h.LastDigest
}

func (h *Harness) StepN(n int) {
	h.T.Helper()
	for i := 0; i < n; i++ {
		h.Step()
	}
}

func (h *Harness) Press(p kitchen.PlayerID, s kitchen.Signal) {
	h.T.Helper()
	h.Step(kitchen.Press(p, s))
}

func (h *Harness) Release(p kitchen.PlayerID, s kitchen.Signal) {
	h.T.Helper()
	h.Step(kitchen.Release(p, s))
}

// Tap presses and releases Interact over two ticks.
func (h *Harness) Tap(p kitchen.PlayerID) {
	h.T.Helper()
	h.Press(p, kitchen.SignalInteract)
	h.Release(p, kitchen.SignalInteract)
}

func (h *Harness) Place(p kitchen.PlayerID, c kitchen.Cell, facing kitchen.Direction) {
	h.T.Helper()
	if !h.K.DebugPlacePlayer(p, c, facing) {
		h.T.Fatalf("place player %d at %+v failed", p, c)
	}
}

func (h *Harness) Give(p kitchen.PlayerID, ingredient string) kitchen.ItemID {
	h.T.Helper()
	id, ok := h.K.DebugGiveItem(p, ingredient)
	if !ok {
		h.T.Fatalf("give %s to player %d failed", ingredient, p)
	}
	return id
}

func (h *Harness) Player(p kitchen.PlayerID) kitchen.Player {
	h.T.Helper()
	pl, ok := h.K.DebugPlayer(p)
	if !ok {
		h.T.Fatalf("unknown player %d", p)
	}
	return pl
}

// Carried returns the item player p holds, failing the test when p holds nothing.
func (h *Harness) Carried(p kitchen.PlayerID) kitchen.Item {
	h.T.Helper()
	pl := h.Player(p)
	it, ok := h.K.DebugItem(pl.Carrying)
	if !ok {
		h.T.Fatalf("player %d carries nothing", p)
	}
	return it
}

func (h *Harness) Station(c kitchen.Cell) kitchen.Station {
	h.T.Helper()
	s, ok := h.K.DebugStation(c)
	if !ok {
		h.T.Fatalf("no station at %+v", c)
	}
	return s
}

// Kitchen returns a layout with a closed border of plain stations, placeholder corners and an
// empty interior. The special stations and one chopping and cooking station sit on the top
// border, left to right from column 1:
// FISH_CRATE, LETTUCE_CRATE, BREAD_CRATE, CHOPPING, COOKING, SERVING, TRASH.
// cols must be at least 9.
func Kitchen(rows, cols int) mapgen.Layout {
	l := mapgen.Layout{
		Rows:         rows,
		Cols:         cols,
		Placeholders: map[mapgen.Cell]struct{}{},
		Plain:        map[mapgen.Cell]struct{}{},
		Chopping:     map[mapgen.Cell]struct{}{},
		Cooking:      map[mapgen.Cell]struct{}{},
		Specials:     map[mapgen.Cell]mapgen.Role{},
		Attempts:     1,
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := mapgen.Cell{Row: r, Col: c}
			switch {
			case (r == 0 || r == rows-1) && (c == 0 || c == cols-1):
				l.Placeholders[cell] = struct{}{}
			case r == 0 || r == rows-1 || c == 0 || c == cols-1:
				l.Plain[cell] = struct{}{}
			}
		}
	}
	top := func(col int) mapgen.Cell {
		c := mapgen.Cell{Row: 0, Col: col}
		delete(l.Plain, c)
		return c
	}
	l.Specials[top(ColFishCrate)] = mapgen.RoleFishCrate
	l.Specials[top(ColLettuceCrate)] = mapgen.RoleLettuceCrate
	l.Specials[top(ColBreadCrate)] = mapgen.RoleBreadCrate
	l.Chopping[top(ColChopping)] = struct{}{}
	l.Cooking[top(ColCooking)] = struct{}{}
	l.Specials[top(ColServing)] = mapgen.RoleServing
	l.Specials[top(ColTrash)] = mapgen.RoleTrash
	return l
}

// Columns of the top-border stations in Kitchen.
const (
	ColFishCrate = iota + 1
	ColLettuceCrate
	ColBreadCrate
	ColChopping
	ColCooking
	ColServing
	ColTrash
)

// Config is a two-player round on a 6x10 grid (100 px cells, 2 px per tick) with short
// processing times.
func Config(seed int64) kitchen.KitchenConfig {
	return kitchen.KitchenConfig{
		RoundID:    "test",
		Players:    2,
		Seed:       seed,
		RoundMs:    60_000,
		TickMs:     15,
		ChoppingMs: 90,
		CookingMs:  150,
	}
}
