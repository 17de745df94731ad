package kitchen

import (
	"fmt"

	"pixelcooked.dev/internal/sim/kitchen/logic/geom"
)

var playerColors = [MaxPlayers]string{"blue", "purple", "orange", "yellow"}

type Player struct {
	ID     PlayerID
	Box    geom.Box
	Facing Direction
	VX, VY float64

	Carrying ItemID
	Interact bool

	Color string
}

func (k *Kitchen) player(id PlayerID) *Player {
	if id < 1 || int(id) > len(k.players) {
		return nil
	}
	return k.players[id-1]
}

// spawnPlayers puts each player on a distinct random free cell, centred.
func (k *Kitchen) spawnPlayers() error {
	free := k.layout.FreeCells()
	if len(free) < k.cfg.Players {
		return fmt.Errorf("kitchen: %d free cells for %d players", len(free), k.cfg.Players)
	}
	k.players = make([]*Player, 0, k.cfg.Players)
	for i := 0; i < k.cfg.Players; i++ {
		j := k.rng.Intn(len(free))
		c := free[j]
		free = append(free[:j], free[j+1:]...)
		k.players = append(k.players, &Player{
			ID:     PlayerID(i + 1),
			Box:    k.cellBox(c, k.cfg.PlayerRatio),
			Facing: Up,
			Color:  playerColors[i],
		})
	}
	return nil
}

// cellBox is a box of ratio*cellLength centred in cell c.
func (k *Kitchen) cellBox(c Cell, ratio float64) geom.Box {
	l := k.cfg.CellLength()
	inset := (1 - ratio) / 2 * l
	return geom.Square(float64(c.Col)*l+inset, float64(c.Row)*l+inset, ratio*l)
}

// seat puts the carried item in front of p according to its facing.
func (k *Kitchen) seat(p *Player, it *Item) {
	w := it.Box.Width()
	b := p.Box
	var x, y float64
	switch p.Facing {
	case Left:
		x, y = b.X1-w, (b.Y1+b.Y2-w)/2
	case Right:
		x, y = b.X2, (b.Y1+b.Y2-w)/2
	case Up:
		x, y = (b.X1+b.X2-w)/2, b.Y1-w
	case Down:
		x, y = (b.X1+b.X2-w)/2, b.Y2
	}
	it.Box = it.Box.MoveTo(x, y)
}

// pickUp links p and it. An item already carried by someone else is left alone.
func (k *Kitchen) pickUp(p *Player, it *Item) {
	if it == nil || it.Carrier != 0 || p.Carrying != 0 {
		return
	}
	p.Carrying = it.ID
	it.Carrier = p.ID
	k.seat(p, it)
}

// drop unlinks the carried item where it is and returns it.
func (k *Kitchen) drop(p *Player) *Item {
	it := k.items.get(p.Carrying)
	p.Carrying = 0
	if it != nil {
		it.Carrier = 0
	}
	return it
}
