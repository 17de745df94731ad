package tui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelcooked.dev/internal/observerproto"
	"pixelcooked.dev/internal/render"
	"pixelcooked.dev/internal/sim/catalogs"
	"pixelcooked.dev/internal/sim/kitchen"
	"pixelcooked.dev/internal/sim/kitchen/logic/geom"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(80, 40)
	t.Cleanup(s.Fini)
	return s
}

func TestCanvas_SurfaceOps(t *testing.T) {
	c := NewCanvas(newScreen(t), 100, 0, 0)
	h := c.Create(render.Shape{Box: geom.Square(0, 0, 80), Fill: "blue"})
	c.Move(h, 5, 10)
	b, ok := c.Coords(h)
	require.True(t, ok)
	assert.Equal(t, geom.Box{X1: 5, Y1: 10, X2: 85, Y2: 90}, b)

	c.MoveTo(h, 100, 200)
	b, _ = c.Coords(h)
	assert.Equal(t, geom.Box{X1: 100, Y1: 200, X2: 180, Y2: 280}, b)

	c.Delete(h)
	_, ok = c.Coords(h)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	// Unknown handles are ignored.
	c.Move(99, 1, 1)
	c.MoveTo(99, 1, 1)
}

func TestCanvas_DrawScalesAndLayers(t *testing.T) {
	s := newScreen(t)
	c := NewCanvas(s, 100, 2, 1)
	c.Create(render.Shape{Box: geom.Box{X1: 100, Y1: 0, X2: 200, Y2: 100}, Fill: "#FFFFFF", Glyph: 'S', Layer: render.LayerStation})
	c.Create(render.Shape{Box: geom.Box{X1: 200, Y1: 0, X2: 300, Y2: 100}, Fill: "#FFFFFF", Glyph: 'S', Layer: render.LayerStation})
	// Created last but drawn below the item.
	c.Create(render.Shape{Box: geom.Box{X1: 120, Y1: 20, X2: 180, Y2: 80}, Fill: "red", Glyph: 'F', Layer: render.LayerItem})
	c.Create(render.Shape{Box: geom.Box{X1: 100, Y1: 0, X2: 200, Y2: 100}, Fill: "#00FF00", Layer: render.LayerStation})
	c.Draw()

	bgAt := func(x, y int) (rune, tcell.Color) {
		r, _, st, _ := s.GetContent(x, y)
		_, bg, _ := st.Decompose()
		return r, bg
	}

	// The second station covers terminal columns 10..13 and rows 1..2, glyph in the middle.
	r, bg := bgAt(10, 2)
	assert.Equal(t, tcell.GetColor("#FFFFFF"), bg)
	r, _ = bgAt(11, 1)
	assert.Equal(t, 'S', r)
	_, bg = bgAt(14, 1)
	assert.NotEqual(t, tcell.GetColor("#FFFFFF"), bg)
	_, bg = bgAt(5, 1)
	assert.NotEqual(t, tcell.GetColor("red"), bg)

	// At this scale the item fills the first station's cells.
	r, bg = bgAt(7, 1)
	assert.Equal(t, tcell.GetColor("red"), bg)
	assert.Equal(t, 'F', r)
	_, bg = bgAt(9, 2)
	assert.Equal(t, tcell.GetColor("red"), bg)

	x, y := c.Cell(250, 150)
	assert.Equal(t, 12, x)
	assert.Equal(t, 4, y)
}

func TestKeyMap_Lookup(t *testing.T) {
	m := DefaultKeyMap(2)

	b, ok := m.Lookup(tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, Binding{Player: 1, Signal: kitchen.SignalMoveUp}, b)

	b, ok = m.Lookup(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, Binding{Player: 2, Signal: kitchen.SignalInteract}, b)

	_, ok = m.Lookup(tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone))
	assert.False(t, ok, "player 3 keys are unbound in a two-player round")

	full := DefaultKeyMap(4)
	assert.Len(t, full, 20)
	b, ok = full.Lookup(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, Binding{Player: 3, Signal: kitchen.SignalInteract}, b)
	b, ok = full.Lookup(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone))
	require.True(t, ok)
	assert.Equal(t, Binding{Player: 4, Signal: kitchen.SignalMoveLeft}, b)
}

func TestHoldTracker(t *testing.T) {
	h := NewHoldTracker(100 * time.Millisecond)
	t0 := time.Unix(1000, 0)
	up := Binding{Player: 1, Signal: kitchen.SignalMoveUp}
	act := Binding{Player: 1, Signal: kitchen.SignalInteract}

	in, ok := h.Observe(up, t0)
	require.True(t, ok)
	assert.Equal(t, kitchen.Press(1, kitchen.SignalMoveUp), in)

	// Repeats keep the key held.
	_, ok = h.Observe(up, t0.Add(60*time.Millisecond))
	assert.False(t, ok)
	_, ok = h.Observe(act, t0.Add(60*time.Millisecond))
	assert.True(t, ok)
	assert.Empty(t, h.Expire(t0.Add(150*time.Millisecond)))

	assert.Equal(t, []kitchen.InputEvent{
		kitchen.Release(1, kitchen.SignalMoveUp),
		kitchen.Release(1, kitchen.SignalInteract),
	}, h.Expire(t0.Add(160*time.Millisecond)))
	assert.Equal(t, 0, h.Held())

	h.Observe(up, t0)
	h.Observe(Binding{Player: 2, Signal: kitchen.SignalMoveDown}, t0)
	assert.Equal(t, []kitchen.InputEvent{
		kitchen.Release(1, kitchen.SignalMoveUp),
		kitchen.Release(2, kitchen.SignalMoveDown),
	}, h.ReleaseAll())
}

func TestHUDAndHelp(t *testing.T) {
	f := observerproto.FrameMsg{
		Clock: "04:59:985",
		Score: 3,
		Orders: []observerproto.OrderState{
			{Name: "Sashimi", Requires: []string{"Sashimi"}},
			{Name: "FishAndChips", Requires: []string{"FriedFish", "Crouton"}},
		},
		Stock: []observerproto.StockEntry{{Ingredient: "Sashimi", Count: 0}, {Ingredient: "Crouton", Count: 2}},
	}
	lines := HUDLines(f)
	require.Len(t, lines, 3)
	assert.Equal(t, "Time 04:59   Score 3", lines[0])
	assert.Equal(t, "Orders: 1. Sashimi (Sashimi)  2. FishAndChips (FriedFish+Crouton)", lines[1])
	assert.Equal(t, "Stock: Crouton x2", lines[2])

	f.Stock = nil
	assert.Equal(t, "Stock: -", HUDLines(f)[2])

	help := HelpLines(DefaultKeyMap(2), 2, []string{"blue", "purple"})
	require.Len(t, help, 3)
	assert.Equal(t, "P1 (blue): W S A D / Z", help[1])
	assert.Equal(t, "P2 (purple): ↑ ↓ ← → / Enter", help[2])

	over := GameOverLines(kitchen.Result{Score: 7, Delivered: 12})
	assert.Equal(t, "Final score: 7", over[1])
}

func newKitchen(t *testing.T, roundMs int) *kitchen.Kitchen {
	t.Helper()
	cats, err := catalogs.LoadDefault()
	require.NoError(t, err)
	k, err := kitchen.New(kitchen.KitchenConfig{RoundID: "tui", Players: 2, Seed: 9, RoundMs: roundMs, TickMs: 15}, cats)
	require.NoError(t, err)
	return k
}

func TestGame_PlaysToGameOver(t *testing.T) {
	s := newScreen(t)
	k := newKitchen(t, 150)
	g := NewGame(s, k, Options{})

	// The first frame is on screen before the round starts.
	_, _, st, _ := s.GetContent(0, arenaTop)
	_, bg, _ := st.Decompose()
	assert.NotEqual(t, tcell.ColorDefault, bg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	type out struct {
		res kitchen.Result
		err error
	}
	done := make(chan out, 1)
	go func() {
		res, err := g.Run(ctx)
		done <- out{res, err}
	}()

	s.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)
	for {
		select {
		case o := <-done:
			require.NoError(t, o.err)
			assert.Equal(t, "tui", o.res.RoundID)
			assert.Equal(t, uint64(10), o.res.Ticks)
			return
		case <-time.After(20 * time.Millisecond):
			// Unbound keys only matter on the game-over screen.
			s.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
		case <-ctx.Done():
			t.Fatal("game did not finish")
		}
	}
}

func TestGame_EscQuits(t *testing.T) {
	s := newScreen(t)
	k := newKitchen(t, 60_000)
	g := NewGame(s, k, Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		res, err := g.Run(ctx)
		assert.Equal(t, kitchen.Result{}, res)
		done <- err
	}()
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("Esc did not stop the game")
	}
}
