// Package render keeps a drawing surface in step with kitchen frames.
package render

import (
	"pixelcooked.dev/internal/sim/kitchen/logic/geom"
)

//go:generate mockgen -destination=mock/mock_surface.go -package=rendermock pixelcooked.dev/internal/render Surface

// Handle identifies a shape on a Surface.
type Handle uint64

type Layer uint8

const (
	LayerStation Layer = iota
	LayerItem
	LayerPlayer
)

// Shape is a filled rectangle. Glyph is an optional one-character label for surfaces that
// cannot show colour well.
type Shape struct {
	Box   geom.Box
	Fill  string
	Glyph rune
	Layer Layer
}

// Surface is anything that can hold movable rectangles. Coordinates are kitchen pixels.
type Surface interface {
	Create(s Shape) Handle
	Move(h Handle, dx, dy float64)
	MoveTo(h Handle, x, y float64)
	Delete(h Handle)
	Coords(h Handle) (geom.Box, bool)
}
