package render

import (
	"sort"

	"pixelcooked.dev/internal/observerproto"
	"pixelcooked.dev/internal/sim/kitchen/logic/geom"
)

// Station fills by kind. Crates take the colour of what they dispense.
var stationFills = map[string]string{
	"PLACEHOLDER": "#5A4632",
	"PLAIN":       "#C8A165",
	"CRATE":       "#8B5A2B",
	"CHOPPING":    "#C0C0C0",
	"COOKING":     "#404040",
	"TRASH":       "#1E1E1E",
	"SERVING":     "#FFFFFF",
}

var stationGlyphs = map[string]rune{
	"PLACEHOLDER": '#',
	"PLAIN":       '=',
	"CRATE":       'C',
	"CHOPPING":    'K',
	"COOKING":     'O',
	"TRASH":       'X',
	"SERVING":     'S',
}

// Mirror applies a stream of frames to a Surface. Stations are drawn once; players and
// items are moved from where the surface says they are.
type Mirror struct {
	surf Surface

	palette map[string]rune

	stations map[uint32]Handle
	players  map[int]Handle
	items    map[uint32]mirroredItem
}

type mirroredItem struct {
	h          Handle
	ingredient string
}

// NewMirror draws onto surf. glyphs maps ingredient ids to labels and may be nil.
func NewMirror(surf Surface, glyphs map[string]rune) *Mirror {
	return &Mirror{
		surf:     surf,
		palette:  glyphs,
		stations: map[uint32]Handle{},
		players:  map[int]Handle{},
		items:    map[uint32]mirroredItem{},
	}
}

func (m *Mirror) Apply(f observerproto.FrameMsg) {
	for _, s := range f.Stations {
		if _, ok := m.stations[s.ID]; ok {
			continue
		}
		fill := stationFills[s.Kind]
		m.stations[s.ID] = m.surf.Create(Shape{
			Box:   geom.FromArray(s.Box),
			Fill:  fill,
			Glyph: stationGlyphs[s.Kind],
			Layer: LayerStation,
		})
	}

	for _, p := range f.Players {
		box := geom.FromArray(p.Box)
		h, ok := m.players[p.ID]
		if !ok {
			m.players[p.ID] = m.surf.Create(Shape{Box: box, Fill: p.Color, Glyph: rune('0' + p.ID), Layer: LayerPlayer})
			continue
		}
		m.follow(h, box, func() {
			m.players[p.ID] = m.surf.Create(Shape{Box: box, Fill: p.Color, Glyph: rune('0' + p.ID), Layer: LayerPlayer})
		}, true)
	}

	seen := make(map[uint32]struct{}, len(f.Items))
	for _, it := range f.Items {
		seen[it.ID] = struct{}{}
		box := geom.FromArray(it.Box)
		create := func() {
			h := m.surf.Create(Shape{Box: box, Fill: it.Color, Glyph: m.palette[it.Ingredient], Layer: LayerItem})
			m.items[it.ID] = mirroredItem{h: h, ingredient: it.Ingredient}
		}
		cur, ok := m.items[it.ID]
		switch {
		case !ok:
			create()
		case cur.ingredient != it.Ingredient:
			// Processed in place: new colour, same spot.
			m.surf.Delete(cur.h)
			create()
		default:
			m.follow(cur.h, box, create, false)
		}
	}
	for _, id := range m.sortedItems() {
		if _, ok := seen[id]; ok {
			continue
		}
		m.surf.Delete(m.items[id].h)
		delete(m.items, id)
	}
}

// follow brings h to box. Players glide by delta; items jump to their new corner.
func (m *Mirror) follow(h Handle, box geom.Box, recreate func(), relative bool) {
	cur, ok := m.surf.Coords(h)
	if !ok {
		recreate()
		return
	}
	if cur == box {
		return
	}
	if relative {
		m.surf.Move(h, box.X1-cur.X1, box.Y1-cur.Y1)
		return
	}
	m.surf.MoveTo(h, box.X1, box.Y1)
}

// Clear deletes every shape the mirror created.
func (m *Mirror) Clear() {
	for _, id := range m.sortedItems() {
		m.surf.Delete(m.items[id].h)
	}
	for _, h := range m.players {
		m.surf.Delete(h)
	}
	for _, h := range m.stations {
		m.surf.Delete(h)
	}
	m.items = map[uint32]mirroredItem{}
	m.players = map[int]Handle{}
	m.stations = map[uint32]Handle{}
}

func (m *Mirror) sortedItems() []uint32 {
	ids := make([]uint32, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
