package tui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"pixelcooked.dev/internal/sim/kitchen"
)

// Key is a physical key: a special key, or KeyRune plus a lower-case rune.
type Key struct {
	Key  tcell.Key
	Rune rune
}

func RuneKey(r rune) Key { return Key{Key: tcell.KeyRune, Rune: r} }

// Binding is the logical signal a key stands for.
type Binding struct {
	Player kitchen.PlayerID
	Signal kitchen.Signal
}

type KeyMap map[Key]Binding

// keySets lists up, down, left, right, interact for each player.
var keySets = [kitchen.MaxPlayers][5]Key{
	{RuneKey('w'), RuneKey('s'), RuneKey('a'), RuneKey('d'), RuneKey('z')},
	{{Key: tcell.KeyUp}, {Key: tcell.KeyDown}, {Key: tcell.KeyLeft}, {Key: tcell.KeyRight}, {Key: tcell.KeyEnter}},
	{RuneKey('t'), RuneKey('g'), RuneKey('f'), RuneKey('h'), RuneKey(' ')},
	{RuneKey('i'), RuneKey('k'), RuneKey('j'), RuneKey('l'), RuneKey('m')},
}

var signalOrder = [5]kitchen.Signal{
	kitchen.SignalMoveUp,
	kitchen.SignalMoveDown,
	kitchen.SignalMoveLeft,
	kitchen.SignalMoveRight,
	kitchen.SignalInteract,
}

// DefaultKeyMap binds the key sets of the first players players.
func DefaultKeyMap(players int) KeyMap {
	m := KeyMap{}
	for p := 0; p < players && p < kitchen.MaxPlayers; p++ {
		for i, k := range keySets[p] {
			m[k] = Binding{Player: kitchen.PlayerID(p + 1), Signal: signalOrder[i]}
		}
	}
	return m
}

func (m KeyMap) Lookup(ev *tcell.EventKey) (Binding, bool) {
	k := Key{Key: ev.Key()}
	if ev.Key() == tcell.KeyRune {
		k.Rune = unicode.ToLower(ev.Rune())
	}
	b, ok := m[k]
	return b, ok
}

// Keys returns the keys bound to player p in up, down, left, right, interact order.
func (m KeyMap) Keys(p kitchen.PlayerID) []Key {
	out := make([]Key, 0, len(signalOrder))
	for _, s := range signalOrder {
		for k, b := range m {
			if b.Player == p && b.Signal == s {
				out = append(out, k)
				break
			}
		}
	}
	return out
}

func (k Key) String() string {
	switch k.Key {
	case tcell.KeyRune:
		if k.Rune == ' ' {
			return "Space"
		}
		return string(unicode.ToUpper(k.Rune))
	case tcell.KeyUp:
		return "↑"
	case tcell.KeyDown:
		return "↓"
	case tcell.KeyLeft:
		return "←"
	case tcell.KeyRight:
		return "→"
	case tcell.KeyEnter:
		return "Enter"
	default:
		return tcell.KeyNames[k.Key]
	}
}
