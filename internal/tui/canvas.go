// Package tui is the terminal front-end: a tcell drawing surface, key bindings and the game
// screen around a running kitchen.
package tui

import (
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"

	"pixelcooked.dev/internal/render"
	"pixelcooked.dev/internal/sim/kitchen/logic/geom"
)

// Terminal cells per kitchen grid cell. Terminal cells are about twice as tall as wide.
const (
	CellCols = 4
	CellRows = 2
)

// Canvas is a render.Surface on a tcell screen. Shapes live in kitchen pixels and are
// scaled to terminal cells when drawn.
type Canvas struct {
	screen tcell.Screen
	// top-left terminal cell of the arena
	originX, originY int
	sx, sy           float64

	next   render.Handle
	shapes map[render.Handle]render.Shape
}

var _ render.Surface = (*Canvas)(nil)

// NewCanvas maps a kitchen whose grid cells are cellLength pixels wide onto screen.
func NewCanvas(screen tcell.Screen, cellLength float64, originX, originY int) *Canvas {
	return &Canvas{
		screen:  screen,
		originX: originX,
		originY: originY,
		sx:      CellCols / cellLength,
		sy:      CellRows / cellLength,
		shapes:  map[render.Handle]render.Shape{},
	}
}

func (c *Canvas) Create(s render.Shape) render.Handle {
	c.next++
	c.shapes[c.next] = s
	return c.next
}

func (c *Canvas) Move(h render.Handle, dx, dy float64) {
	if s, ok := c.shapes[h]; ok {
		s.Box = s.Box.Translate(dx, dy)
		c.shapes[h] = s
	}
}

func (c *Canvas) MoveTo(h render.Handle, x, y float64) {
	if s, ok := c.shapes[h]; ok {
		s.Box = s.Box.MoveTo(x, y)
		c.shapes[h] = s
	}
}

func (c *Canvas) Delete(h render.Handle) { delete(c.shapes, h) }

func (c *Canvas) Coords(h render.Handle) (geom.Box, bool) {
	s, ok := c.shapes[h]
	return s.Box, ok
}

func (c *Canvas) Len() int { return len(c.shapes) }

// Cell converts a kitchen pixel position to a terminal cell.
func (c *Canvas) Cell(x, y float64) (int, int) {
	return c.originX + int(math.Floor(x*c.sx)), c.originY + int(math.Floor(y*c.sy))
}

// Draw paints every shape, stations first and players last. It does not call Show.
func (c *Canvas) Draw() {
	hs := make([]render.Handle, 0, len(c.shapes))
	for h := range c.shapes {
		hs = append(hs, h)
	}
	sort.Slice(hs, func(i, j int) bool {
		a, b := c.shapes[hs[i]], c.shapes[hs[j]]
		if a.Layer != b.Layer {
			return a.Layer < b.Layer
		}
		return hs[i] < hs[j]
	})
	for _, h := range hs {
		c.paint(c.shapes[h])
	}
}

func (c *Canvas) paint(s render.Shape) {
	x0, y0 := c.Cell(s.Box.X1, s.Box.Y1)
	// Right and bottom edges are exclusive so neighbouring cells do not overlap.
	x1 := c.originX + int(math.Ceil(s.Box.X2*c.sx)) - 1
	y1 := c.originY + int(math.Ceil(s.Box.Y2*c.sy)) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	style := tcell.StyleDefault.Background(tcell.GetColor(s.Fill)).Foreground(tcell.ColorBlack)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	if s.Glyph != 0 {
		c.screen.SetContent((x0+x1)/2, (y0+y1)/2, s.Glyph, nil, style)
	}
}
