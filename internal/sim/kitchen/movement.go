package kitchen

import (
	"math"

	"pixelcooked.dev/internal/sim/kitchen/logic/geom"
)

// footprint is the player's reference cell plus how far its box spills into the next cell
// on each axis (0 or 1).
type footprint struct {
	row, col   int
	rrmd, crmd int
}

func (k *Kitchen) playerCell(p *Player) footprint {
	l := k.cfg.CellLength()
	f := footprint{
		col: int(math.Floor(p.Box.X1 / l)),
		row: int(math.Floor(p.Box.Y1 / l)),
	}
	f.crmd = int(math.Floor(p.Box.X2/l)) - f.col
	f.rrmd = int(math.Floor(p.Box.Y2/l)) - f.row
	if p.Facing == Up && f.rrmd != 0 {
		f.row++
	}
	if p.Facing == Left && f.crmd != 0 {
		f.col++
	}
	return f
}

// itemTarget returns the nearest loose item in front of p, or nil.
func (k *Kitchen) itemTarget(p *Player, f footprint) *Item {
	l := k.cfg.CellLength()
	dx, dy := p.Facing.Delta()
	var (
		cands []*Item
		boxes []geom.Box
	)
	for _, id := range k.items.ids() {
		it := k.items.byID[id]
		if it.Carrier != 0 {
			continue
		}
		c := Cell{Row: int(math.Floor(it.Box.Y1 / l)), Col: int(math.Floor(it.Box.X1 / l))}
		if s := k.stationAt[c]; s != nil && s.Held == it.ID {
			continue
		}
		var ahead, side, reach int
		if p.Facing.Vertical() {
			ahead, side, reach = (c.Row-f.row)*dy, c.Col-f.col, 1+f.rrmd
		} else {
			ahead, side, reach = (c.Col-f.col)*dx, c.Row-f.row, 1+f.crmd
		}
		if side < -1 || side > 1 || ahead <= 0 || ahead > reach {
			continue
		}
		cands = append(cands, it)
		boxes = append(boxes, it.Box)
	}
	i, err := geom.Nearest(p.Box, boxes)
	if err != nil {
		return nil
	}
	return cands[i]
}

// stationTarget walks forward from the player's cell and returns the nearest station of the
// first row (or column) that has one. The border guarantees a hit.
func (k *Kitchen) stationTarget(p *Player, f footprint) *Station {
	dx, dy := p.Facing.Delta()
	var (
		cands []*Station
		boxes []geom.Box
	)
	collect := func(c Cell) {
		if s := k.stationAt[c]; s != nil {
			cands = append(cands, s)
			boxes = append(boxes, s.Box)
		}
	}
	for c := (Cell{Row: f.row, Col: f.col}); k.layout.InBounds(c) && len(cands) == 0; c.Row, c.Col = c.Row+dy, c.Col+dx {
		collect(c)
		if p.Facing.Vertical() && f.crmd != 0 {
			collect(Cell{Row: c.Row, Col: c.Col + f.crmd})
		}
		if !p.Facing.Vertical() && f.rrmd != 0 {
			collect(Cell{Row: c.Row + f.rrmd, Col: c.Col})
		}
	}
	i, err := geom.Nearest(p.Box, boxes)
	if err != nil {
		panic(err)
	}
	return cands[i]
}

// move applies VY then VX, reverting each axis that would touch target or another player.
func (k *Kitchen) move(p *Player, target *Station) {
	k.moveAxis(p, target, 0, p.VY)
	k.moveAxis(p, target, p.VX, 0)
}

func (k *Kitchen) moveAxis(p *Player, target *Station, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	prev := p.Box
	p.Box = p.Box.Translate(dx, dy)
	if k.collides(p, target) {
		p.Box = prev
		return
	}
	if it := k.items.get(p.Carrying); it != nil {
		it.Box = it.Box.Translate(dx, dy)
	}
}

func (k *Kitchen) collides(p *Player, target *Station) bool {
	if target != nil && geom.Intersects(p.Box, target.Box) {
		return true
	}
	for _, o := range k.players {
		if o.ID != p.ID && geom.Intersects(p.Box, o.Box) {
			return true
		}
	}
	return false
}
