package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"
	ErrProtoVersion    = "E_PROTO_VERSION"

	// Round routing/state.
	ErrRoundOver   = "E_ROUND_OVER"
	ErrRoundBusy   = "E_ROUND_BUSY"
	ErrRoundDenied = "E_ROUND_DENIED"

	// Input layer.
	ErrBadPlayer = "E_BAD_PLAYER"
	ErrBadSignal = "E_BAD_SIGNAL"
	ErrInternal  = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrProtoVersion:    {},
	ErrRoundOver:       {},
	ErrRoundBusy:       {},
	ErrRoundDenied:     {},
	ErrBadPlayer:       {},
	ErrBadSignal:       {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
