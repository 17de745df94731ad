package kitchen

import (
	"fmt"

	"pixelcooked.dev/internal/protocol"
)

// Signal is one of the five logical inputs every player has.
type Signal uint8

const (
	SignalMoveUp Signal = iota + 1
	SignalMoveDown
	SignalMoveLeft
	SignalMoveRight
	SignalInteract
)

var signalNames = map[Signal]string{
	SignalMoveUp:    protocol.SignalMoveUp,
	SignalMoveDown:  protocol.SignalMoveDown,
	SignalMoveLeft:  protocol.SignalMoveLeft,
	SignalMoveRight: protocol.SignalMoveRight,
	SignalInteract:  protocol.SignalInteract,
}

func (s Signal) String() string {
	if n, ok := signalNames[s]; ok {
		return n
	}
	return fmt.Sprintf("SIGNAL(%d)", uint8(s))
}

func ParseSignal(name string) (Signal, error) {
	for s, n := range signalNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown signal %q", name)
}

func (s Signal) MarshalText() ([]byte, error) {
	if _, ok := signalNames[s]; !ok {
		return nil, fmt.Errorf("unknown signal %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Signal) UnmarshalText(b []byte) error {
	v, err := ParseSignal(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// InputEvent is a press or release of one player's signal. Events queue until the next tick.
type InputEvent struct {
	Player  PlayerID `json:"player"`
	Signal  Signal   `json:"signal"`
	Pressed bool     `json:"pressed"`
}

func Press(p PlayerID, s Signal) InputEvent   { return InputEvent{Player: p, Signal: s, Pressed: true} }
func Release(p PlayerID, s Signal) InputEvent { return InputEvent{Player: p, Signal: s} }

func (k *Kitchen) applyInput(ev InputEvent) {
	p := k.player(ev.Player)
	if p == nil {
		return
	}
	v := k.cfg.Velocity()
	switch ev.Signal {
	case SignalMoveUp:
		k.steer(p, Up, ev.Pressed, -v)
	case SignalMoveDown:
		k.steer(p, Down, ev.Pressed, v)
	case SignalMoveLeft:
		k.steer(p, Left, ev.Pressed, -v)
	case SignalMoveRight:
		k.steer(p, Right, ev.Pressed, v)
	case SignalInteract:
		p.Interact = ev.Pressed
	}
}

// steer handles a move signal. A release zeroes the signal's axis. A press sets it, and when
// the facing changes it also stops the other axis and re-seats the carried item.
func (k *Kitchen) steer(p *Player, d Direction, pressed bool, v float64) {
	if !pressed {
		if d.Vertical() {
			p.VY = 0
		} else {
			p.VX = 0
		}
		return
	}
	if d.Vertical() {
		p.VY = v
	} else {
		p.VX = v
	}
	if p.Facing == d {
		return
	}
	p.Facing = d
	if d.Vertical() {
		p.VX = 0
	} else {
		p.VY = 0
	}
	if it := k.items.get(p.Carrying); it != nil {
		k.seat(p, it)
	}
}
