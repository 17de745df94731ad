package kitchen

import (
	"math"

	"pixelcooked.dev/internal/sim/catalogs"
	"pixelcooked.dev/internal/sim/kitchen/logic/geom"
)

// interact resolves one interaction press. The branches are checked in priority order and
// exactly one of them runs.
func (k *Kitchen) interact(p *Player, st *Station, it *Item) {
	dStation, dItem := math.Inf(1), math.Inf(1)
	if st != nil {
		dStation = geom.Distance(p.Box, st.Box)
	}
	if it != nil {
		dItem = geom.Distance(p.Box, it.Box)
	}
	radius := p.Box.Width() * k.cfg.InteractRadiusFactor
	carried := k.items.get(p.Carrying)

	switch {
	case min(dStation, dItem) > radius:
		if carried != nil {
			k.drop(p)
		}
	case dItem < dStation:
		if carried == nil {
			k.pickUp(p, it)
		}
	case st.Kind == KindCrate && carried == nil:
		k.pickUp(p, k.remove(st))
	case carried != nil && st.processing():
		proc, _ := st.Kind.Process()
		if canUndergo(carried, proc) {
			k.drop(p)
			k.receive(st, carried)
		}
	case carried != nil && st.Kind != KindCrate:
		k.drop(p)
		k.receive(st, carried)
	case carried == nil && st.Held != 0:
		k.pickUp(p, k.remove(st))
	}
}

func canUndergo(it *Item, p catalogs.Process) bool {
	switch p {
	case catalogs.ProcessChop:
		return it.CanChop
	case catalogs.ProcessCook:
		return it.CanCook
	}
	return false
}

// tickProcessors advances every processing station that holds an item it can work on.
func (k *Kitchen) tickProcessors() {
	for _, s := range k.processing {
		it := k.items.get(s.Held)
		if it == nil {
			continue
		}
		proc, _ := s.Kind.Process()
		if !canUndergo(it, proc) {
			continue
		}
		s.TimerMs -= k.cfg.TickMs
		if s.TimerMs > 0 {
			continue
		}
		s.Held = k.transform(it, proc).ID
		s.TimerMs = s.MaxTimerMs
	}
}
