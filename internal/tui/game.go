package tui

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"pixelcooked.dev/internal/observerproto"
	"pixelcooked.dev/internal/pkg/clock"
	"pixelcooked.dev/internal/render"
	"pixelcooked.dev/internal/sim/kitchen"
)

const arenaTop = 4

type Options struct {
	Keys        KeyMap
	HoldTimeout time.Duration
	Clock       clock.Clock
	Logger      *log.Logger
}

// Game runs one round on a terminal screen.
type Game struct {
	screen tcell.Screen
	k      *kitchen.Kitchen

	keys   KeyMap
	hold   *HoldTracker
	canvas *Canvas
	mirror *render.Mirror
	frames chan observerproto.FrameMsg
	help   []string

	clock clock.Clock
	log   *log.Logger
}

// NewGame must be called before the kitchen starts running; it installs the frame sink.
func NewGame(screen tcell.Screen, k *kitchen.Kitchen, opts Options) *Game {
	cfg := k.Config()
	if opts.Keys == nil {
		opts.Keys = DefaultKeyMap(cfg.Players)
	}
	if opts.HoldTimeout <= 0 {
		opts.HoldTimeout = 150 * time.Millisecond
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	glyphs := map[string]rune{}
	ing := k.Catalogs().Ingredients
	for _, id := range ing.Palette {
		glyphs[id] = ing.Glyph(id)
	}

	first := k.Frame()
	colors := make([]string, 0, len(first.Players))
	for _, p := range first.Players {
		colors = append(colors, p.Color)
	}

	canvas := NewCanvas(screen, cfg.CellLength(), 0, arenaTop)
	g := &Game{
		screen: screen,
		k:      k,
		keys:   opts.Keys,
		hold:   NewHoldTracker(opts.HoldTimeout),
		canvas: canvas,
		mirror: render.NewMirror(canvas, glyphs),
		frames: make(chan observerproto.FrameMsg, 1),
		help:   HelpLines(opts.Keys, cfg.Players, colors),
		clock:  opts.Clock,
		log:    opts.Logger,
	}
	k.SetFrameSink(g.frames)
	g.draw(first)
	return g
}

// Run plays the round. It returns when the round ends and the game-over screen is dismissed,
// when the player quits with Esc, or when ctx is cancelled.
func (g *Game) Run(ctx context.Context) (kitchen.Result, error) {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	runDone := make(chan error, 1)
	go func() { runDone <- g.k.Run(ctx) }()

	ticker := time.NewTicker(time.Duration(g.k.Config().TickMs) * time.Millisecond)
	defer ticker.Stop()

	quit := false
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				g.k.Stop()
				events = nil
				continue
			}
			if g.handleEvent(ev) {
				quit = true
				g.k.Stop()
			}
		case <-ticker.C:
			for _, in := range g.hold.Expire(g.clock.Now()) {
				g.send(in)
			}
		case f := <-g.frames:
			g.draw(f)
		case err := <-runDone:
			select {
			case f := <-g.frames:
				g.draw(f)
			default:
			}
			if err != nil {
				return kitchen.Result{}, err
			}
			if quit || !g.k.Over() {
				return kitchen.Result{}, nil
			}
			res := g.k.Result()
			g.log.Printf("round %s over: score=%d delivered=%d ticks=%d", res.RoundID, res.Score, res.Delivered, res.Ticks)
			drawGameOver(g.screen, res)
			g.waitKey(ctx, events)
			return res, nil
		}
	}
}

// handleEvent reports whether the player asked to quit.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true
		}
		b, ok := g.keys.Lookup(ev)
		if !ok {
			return false
		}
		if in, ok := g.hold.Observe(b, g.clock.Now()); ok {
			g.send(in)
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return false
}

func (g *Game) send(in kitchen.InputEvent) {
	select {
	case g.k.Inputs() <- in:
	default:
		g.log.Printf("input dropped: player=%d signal=%s", in.Player, in.Signal)
	}
}

func (g *Game) waitKey(ctx context.Context, events <-chan tcell.Event) {
	if events == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if _, isKey := ev.(*tcell.EventKey); isKey {
				return
			}
		}
	}
}

func (g *Game) draw(f observerproto.FrameMsg) {
	g.screen.Clear()
	drawHUD(g.screen, 0, 0, f)
	g.mirror.Apply(f)
	g.canvas.Draw()
	rows := g.k.Config().Rows()
	drawHelp(g.screen, 0, arenaTop+rows*CellRows+1, g.help)
	g.screen.Show()
}
