package observerproto

import (
	"github.com/invopop/jsonschema"

	"pixelcooked.dev/internal/protocol"
)

// Version is the observer protocol version.
const Version = "1.0"

// Client -> Server. First message on the observer WS connection.
type SubscribeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	// EveryNTicks thins the feed; 0 and 1 both mean every tick.
	EveryNTicks int `json:"every_n_ticks,omitempty"`
}

// HTTP response for GET /observer/bootstrap.
type BootstrapResponse struct {
	ProtocolVersion string         `json:"protocol_version"`
	RoundID         string         `json:"round_id"`
	Tick            uint64         `json:"tick"`
	Players         int            `json:"players"`
	Rows            int            `json:"rows"`
	Cols            int            `json:"cols"`
	CellLength      float64        `json:"cell_length"`
	TickMs          int            `json:"tick_ms"`
	RoundMs         int            `json:"round_ms"`
	Palette         []PaletteEntry `json:"palette"`
}

type PaletteEntry struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}

// Server -> Client. Sent every tick (or every N ticks per subscription).
type FrameMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Tick            uint64 `json:"tick"`

	RemainingMs int    `json:"remaining_ms"`
	Clock       string `json:"clock"`
	Score       int    `json:"score"`
	Over        bool   `json:"over"`

	Stations []StationState `json:"stations"`
	Players  []PlayerState  `json:"players"`
	Items    []ItemState    `json:"items"`
	Orders   []OrderState   `json:"orders"`
	Stock    []StockEntry   `json:"stock"`
}

type StationState struct {
	ID         uint32     `json:"id"`
	Row        int        `json:"row"`
	Col        int        `json:"col"`
	Kind       string     `json:"kind"`
	Box        [4]float64 `json:"box"`
	Dispenses  string     `json:"dispenses,omitempty"`
	Held       uint32     `json:"held,omitempty"`
	TimerMs    int        `json:"timer_ms,omitempty"`
	MaxTimerMs int        `json:"max_timer_ms,omitempty"`
}

type PlayerState struct {
	ID       int        `json:"id"`
	Box      [4]float64 `json:"box"`
	Facing   string     `json:"facing"`
	Carrying uint32     `json:"carrying,omitempty"`
	Color    string     `json:"color"`
}

type ItemState struct {
	ID         uint32     `json:"id"`
	Ingredient string     `json:"ingredient"`
	Box        [4]float64 `json:"box"`
	Carrier    int        `json:"carrier,omitempty"`
	Color      string     `json:"color"`
}

type OrderState struct {
	Name     string   `json:"name"`
	Requires []string `json:"requires"`
}

type StockEntry struct {
	Ingredient string `json:"ingredient"`
	Count      int    `json:"count"`
}

// Server -> Client. Sent for bad client messages before the connection is closed.
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Code            string `json:"code"`
	Message         string `json:"message"`
}

func NewError(code, msg string) ErrorMsg {
	return ErrorMsg{Type: protocol.TypeError, ProtocolVersion: Version, Code: code, Message: msg}
}

// FrameSchema reflects the JSON Schema of FrameMsg.
func FrameSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{DoNotReference: true}
	s := r.Reflect(&FrameMsg{})
	s.Title = "PixelCooked observer frame"
	s.Description = "One FRAME message per simulated tick on /observer/ws."
	return s
}
