package kitchen

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"

	"pixelcooked.dev/internal/observerproto"
	"pixelcooked.dev/internal/sim/catalogs"
	"pixelcooked.dev/internal/sim/kitchen/logic/geom"
	"pixelcooked.dev/internal/sim/kitchen/logic/mapgen"
)

// Kitchen is one round of the game. All state is owned by the goroutine running Run (or the
// caller of StepOnce); other goroutines talk to it through channels.
type Kitchen struct {
	cfg    KitchenConfig
	cats   *catalogs.Catalogs
	rng    *rand.Rand
	layout mapgen.Layout

	tick        atomic.Uint64
	remainingMs int
	over        bool
	result      Result

	stations   []*Station
	stationAt  map[Cell]*Station
	processing []*Station
	players    []*Player
	items      itemArena

	orders    []Order
	stock     []int // by palette index
	score     int
	delivered int

	inputs        chan InputEvent
	observerJoin  chan ObserverJoinRequest
	observerLeave chan string
	stop          chan struct{}
	stopOnce      sync.Once

	observers map[string]*observerClient

	tickLogger TickLogger
	frameSink  chan observerproto.FrameMsg
}

// Result is the final state of a finished round.
type Result struct {
	RoundID   string `json:"round_id"`
	Players   int    `json:"players"`
	Seed      int64  `json:"seed"`
	Score     int    `json:"score"`
	Ticks     uint64 `json:"ticks"`
	RoundMs   int    `json:"round_ms"`
	Delivered int    `json:"delivered"`
}

// New generates a layout from cfg.Seed and sets up a round on it.
func New(cfg KitchenConfig, cats *catalogs.Catalogs) (*Kitchen, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	layout, err := mapgen.Generate(rng, cfg.mapParams())
	if err != nil {
		return nil, fmt.Errorf("kitchen: generate map: %w", err)
	}
	return build(cfg, cats, rng, layout)
}

// NewWithLayout sets up a round on a fixed layout. The seed still drives spawns and orders.
func NewWithLayout(cfg KitchenConfig, cats *catalogs.Catalogs, layout mapgen.Layout) (*Kitchen, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if layout.Rows != cfg.Rows() || layout.Cols != cfg.Cols() {
		return nil, fmt.Errorf("kitchen: layout is %dx%d, config wants %dx%d", layout.Rows, layout.Cols, cfg.Rows(), cfg.Cols())
	}
	return build(cfg, cats, rand.New(rand.NewSource(cfg.Seed)), layout)
}

func build(cfg KitchenConfig, cats *catalogs.Catalogs, rng *rand.Rand, layout mapgen.Layout) (*Kitchen, error) {
	if cats == nil {
		return nil, fmt.Errorf("kitchen: nil catalogs")
	}
	if len(cats.Recipes.List) == 0 {
		return nil, fmt.Errorf("kitchen: empty recipe catalogue")
	}
	k := &Kitchen{
		cfg:           cfg,
		cats:          cats,
		rng:           rng,
		layout:        layout,
		remainingMs:   cfg.RoundMs,
		stationAt:     map[Cell]*Station{},
		items:         newItemArena(),
		stock:         make([]int, len(cats.Ingredients.Palette)),
		inputs:        make(chan InputEvent, 256),
		observerJoin:  make(chan ObserverJoinRequest, 64),
		observerLeave: make(chan string, 64),
		stop:          make(chan struct{}),
		observers:     map[string]*observerClient{},
	}
	if err := k.buildStations(); err != nil {
		return nil, err
	}
	if err := k.spawnPlayers(); err != nil {
		return nil, err
	}
	for i := 0; i < OrderQueueLen; i++ {
		k.orders = append(k.orders, k.drawOrder())
	}
	return k, nil
}

// buildStations creates one station per occupied cell in row-major order, so ids follow the
// same order.
func (k *Kitchen) buildStations() error {
	l := k.cfg.CellLength()
	for r := 0; r < k.layout.Rows; r++ {
		for c := 0; c < k.layout.Cols; c++ {
			cell := Cell{Row: r, Col: c}
			kind, role := k.kindAt(cell)
			if kind == 0 {
				continue
			}
			s := &Station{
				ID:   StationID(len(k.stations) + 1),
				Cell: cell,
				Box:  geom.Square(float64(c)*l, float64(r)*l, l),
				Kind: kind,
			}
			switch kind {
			case KindCrate:
				ing, ok := k.cats.Crates.Ingredient(role.String())
				if !ok {
					return fmt.Errorf("kitchen: no crate binding for %s", role)
				}
				s.Dispenses = ing
			case KindChopping:
				s.MaxTimerMs = k.cfg.ChoppingMs
			case KindCooking:
				s.MaxTimerMs = k.cfg.CookingMs
			}
			s.TimerMs = s.MaxTimerMs
			k.stations = append(k.stations, s)
			k.stationAt[cell] = s
			if s.processing() {
				k.processing = append(k.processing, s)
			}
		}
	}
	return nil
}

func (k *Kitchen) kindAt(c Cell) (StationKind, mapgen.Role) {
	if role, ok := k.layout.Specials[c]; ok {
		switch role {
		case mapgen.RoleServing:
			return KindServing, role
		case mapgen.RoleTrash:
			return KindTrash, role
		default:
			return KindCrate, role
		}
	}
	if _, ok := k.layout.Placeholders[c]; ok {
		return KindPlaceholder, 0
	}
	if _, ok := k.layout.Chopping[c]; ok {
		return KindChopping, 0
	}
	if _, ok := k.layout.Cooking[c]; ok {
		return KindCooking, 0
	}
	if _, ok := k.layout.Plain[c]; ok {
		return KindPlain, 0
	}
	return 0, 0
}

func (k *Kitchen) Config() KitchenConfig                    { return k.cfg }
func (k *Kitchen) Catalogs() *catalogs.Catalogs             { return k.cats }
func (k *Kitchen) Layout() mapgen.Layout                    { return k.layout }
func (k *Kitchen) CurrentTick() uint64                      { return k.tick.Load() }
func (k *Kitchen) Inputs() chan<- InputEvent                { return k.inputs }
func (k *Kitchen) SetTickLogger(l TickLogger)               { k.tickLogger = l }
func (k *Kitchen) ObserverJoin() chan<- ObserverJoinRequest { return k.observerJoin }
func (k *Kitchen) ObserverLeave() chan<- string             { return k.observerLeave }

// SetFrameSink registers a channel that receives a frame after every tick. Sends never block;
// a slow reader only sees the latest frame.
func (k *Kitchen) SetFrameSink(ch chan observerproto.FrameMsg) { k.frameSink = ch }

// Result is valid once Over reports true. Not safe concurrently with Run.
func (k *Kitchen) Result() Result { return k.result }
func (k *Kitchen) Over() bool     { return k.over }
func (k *Kitchen) Score() int     { return k.score }
func (k *Kitchen) RemainingMs() int {
	return k.remainingMs
}
