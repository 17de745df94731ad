package kitchen

import (
	"fmt"

	"pixelcooked.dev/internal/sim/catalogs"
	"pixelcooked.dev/internal/sim/kitchen/logic/mapgen"
)

type Cell = mapgen.Cell

type (
	StationID uint32
	ItemID    uint32
	PlayerID  int
)

type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Delta is the unit step (dCol, dRow) of d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

func (d Direction) Vertical() bool { return d == Up || d == Down }

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("DIR(%d)", uint8(d))
	}
}

type StationKind uint8

const (
	KindPlaceholder StationKind = iota + 1
	KindPlain
	KindCrate
	KindChopping
	KindCooking
	KindTrash
	KindServing
)

func (k StationKind) String() string {
	switch k {
	case KindPlaceholder:
		return "PLACEHOLDER"
	case KindPlain:
		return "PLAIN"
	case KindCrate:
		return "CRATE"
	case KindChopping:
		return "CHOPPING"
	case KindCooking:
		return "COOKING"
	case KindTrash:
		return "TRASH"
	case KindServing:
		return "SERVING"
	default:
		return "EMPTY"
	}
}

// Process is the transformation a processing station applies, if any.
func (k StationKind) Process() (catalogs.Process, bool) {
	switch k {
	case KindChopping:
		return catalogs.ProcessChop, true
	case KindCooking:
		return catalogs.ProcessCook, true
	default:
		return 0, false
	}
}
