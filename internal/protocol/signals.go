package protocol

// Logical input signal names, as recorded in round journals.
const (
	SignalMoveUp    = "MOVE_UP"
	SignalMoveDown  = "MOVE_DOWN"
	SignalMoveLeft  = "MOVE_LEFT"
	SignalMoveRight = "MOVE_RIGHT"
	SignalInteract  = "INTERACT"
)

var SignalNames = []string{SignalMoveUp, SignalMoveDown, SignalMoveLeft, SignalMoveRight, SignalInteract}

func IsSignal(name string) bool {
	for _, s := range SignalNames {
		if s == name {
			return true
		}
	}
	return false
}
