package mapgen

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

var ErrTooFewStations = errors.New("mapgen: too few stations for special roles")

// Cell is a grid coordinate. Row grows downwards, Col grows rightwards.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Directions are the four orthogonal neighbour offsets.
var Directions = [4]Cell{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

type Role uint8

const (
	RoleFishCrate Role = iota + 1
	RoleLettuceCrate
	RoleBreadCrate
	RoleServing
	RoleTrash
)

func (r Role) String() string {
	switch r {
	case RoleFishCrate:
		return "FISH_CRATE"
	case RoleLettuceCrate:
		return "LETTUCE_CRATE"
	case RoleBreadCrate:
		return "BREAD_CRATE"
	case RoleServing:
		return "SERVING"
	case RoleTrash:
		return "TRASH"
	default:
		return "NONE"
	}
}

// specialOrder is the assignment order for the first five drawn stations.
var specialOrder = [5]Role{RoleFishCrate, RoleLettuceCrate, RoleBreadCrate, RoleServing, RoleTrash}

type Params struct {
	Rows        int
	Cols        int
	Probability float64

	MinStations int // floor below which every iteration places a station
	MaxRetries  int // re-picks per placement before growth stops
	MaxMisses   int // consecutive probability misses that end growth
	MaxAttempts int // whole-map attempts before giving up
}

func (p *Params) applyDefaults() {
	if p.MinStations <= 0 {
		p.MinStations = 7
	}
	if p.MaxRetries <= 0 {
		p.MaxRetries = 10
	}
	if p.MaxMisses <= 0 {
		p.MaxMisses = 3
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 32
	}
}

func (p Params) Validate() error {
	if p.Rows < 3 || p.Cols < 3 {
		return fmt.Errorf("mapgen: grid %dx%d too small", p.Rows, p.Cols)
	}
	if p.Probability < 0 || p.Probability > 1 {
		return fmt.Errorf("mapgen: probability %v out of [0,1]", p.Probability)
	}
	return nil
}

// Layout is a generated kitchen. The five maps are disjoint; cells in none of them are floor.
type Layout struct {
	Rows int
	Cols int

	Placeholders map[Cell]struct{}
	Plain        map[Cell]struct{}
	Chopping     map[Cell]struct{}
	Cooking      map[Cell]struct{}
	Specials     map[Cell]Role

	// Attempts is the number of whole-map passes used (1 when the first pass succeeded).
	Attempts int
}

func (l Layout) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < l.Rows && c.Col >= 0 && c.Col < l.Cols
}

// Occupied reports whether any station (placeholders included) sits on c.
func (l Layout) Occupied(c Cell) bool {
	if _, ok := l.Placeholders[c]; ok {
		return true
	}
	if _, ok := l.Plain[c]; ok {
		return true
	}
	if _, ok := l.Chopping[c]; ok {
		return true
	}
	if _, ok := l.Cooking[c]; ok {
		return true
	}
	_, ok := l.Specials[c]
	return ok
}

// FreeCells returns the floor cells in row-major order.
func (l Layout) FreeCells() []Cell {
	var out []Cell
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			if cell := (Cell{r, c}); !l.Occupied(cell) {
				out = append(out, cell)
			}
		}
	}
	return out
}

// Special returns the cell holding role r.
func (l Layout) Special(r Role) (Cell, bool) {
	for c, role := range l.Specials {
		if role == r {
			return c, true
		}
	}
	return Cell{}, false
}

// Generate builds a layout. Passes that end with fewer than MinStations stations are
// retried with the same rng until MaxAttempts is reached.
func Generate(rng *rand.Rand, p Params) (Layout, error) {
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return Layout{}, err
	}
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		l, err := generateOnce(rng, p)
		if err == nil {
			l.Attempts = attempt
			return l, nil
		}
		lastErr = err
	}
	return Layout{}, fmt.Errorf("after %d attempts: %w", p.MaxAttempts, lastErr)
}

type grid struct {
	rows, cols   int
	stations     mapset.Set[Cell]
	placeholders mapset.Set[Cell]
}

func (g *grid) occupied(c Cell) bool {
	return g.stations.Has(c) || g.placeholders.Has(c)
}

// freeWithout is every free cell except skip.
func (g *grid) freeWithout(skip Cell) mapset.Set[Cell] {
	free := mapset.New[Cell]()
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			cell := Cell{r, c}
			if cell != skip && !g.occupied(cell) {
				free.Put(cell)
			}
		}
	}
	return free
}

func (g *grid) accessible(c Cell) bool {
	return IsStationAccessible(c, g.rows, g.cols, g.occupied)
}

func (g *grid) randomCell(rng *rand.Rand) Cell {
	n := rng.Intn(g.rows * g.cols)
	return Cell{Row: n / g.cols, Col: n % g.cols}
}

func (g *grid) sortedStations() []Cell {
	out := make([]Cell, 0, g.stations.Size())
	g.stations.Each(func(c Cell) { out = append(out, c) })
	SortCells(out)
	return out
}

func generateOnce(rng *rand.Rand, p Params) (Layout, error) {
	g := &grid{
		rows:         p.Rows,
		cols:         p.Cols,
		stations:     mapset.New[Cell](),
		placeholders: mapset.New[Cell](),
	}
	g.placeholders.Put(Cell{0, 0})
	g.placeholders.Put(Cell{0, p.Cols - 1})
	g.placeholders.Put(Cell{p.Rows - 1, 0})
	g.placeholders.Put(Cell{p.Rows - 1, p.Cols - 1})
	for r := 1; r < p.Rows-1; r++ {
		g.stations.Put(Cell{r, 0})
		g.stations.Put(Cell{r, p.Cols - 1})
	}
	for c := 1; c < p.Cols-1; c++ {
		g.stations.Put(Cell{0, c})
		g.stations.Put(Cell{p.Rows - 1, c})
	}

	misses := 0
	for misses < p.MaxMisses || g.stations.Size() < p.MinStations {
		gate := p.Probability
		if g.stations.Size() < p.MinStations {
			gate = 1
		}
		if rng.Float64() > gate {
			misses++
			continue
		}

		cell := g.randomCell(rng)
		retries := 0
		for retries < p.MaxRetries && (g.occupied(cell) || !IsMapAccessible(g.freeWithout(cell))) {
			cell = g.randomCell(rng)
			retries++
		}
		if retries == p.MaxRetries {
			break
		}

		if g.accessible(cell) {
			g.stations.Put(cell)
		} else {
			g.placeholders.Put(cell)
		}
		for _, d := range Directions {
			n := Cell{cell.Row + d.Row, cell.Col + d.Col}
			if g.stations.Has(n) && !g.accessible(n) {
				g.stations.Remove(n)
				g.placeholders.Put(n)
			}
		}
		misses = 0
	}

	pool := g.sortedStations()
	if len(pool) < len(specialOrder)+2 {
		return Layout{}, fmt.Errorf("%w: have %d", ErrTooFewStations, len(pool))
	}

	draw := func() Cell {
		i := rng.Intn(len(pool))
		c := pool[i]
		pool = append(pool[:i], pool[i+1:]...)
		return c
	}
	picked := make([]Cell, 0, len(specialOrder)+2)
	for i := 0; i < len(specialOrder)+2; i++ {
		picked = append(picked, draw())
	}

	l := Layout{
		Rows:         p.Rows,
		Cols:         p.Cols,
		Placeholders: map[Cell]struct{}{},
		Plain:        map[Cell]struct{}{},
		Chopping:     map[Cell]struct{}{},
		Cooking:      map[Cell]struct{}{},
		Specials:     map[Cell]Role{},
	}
	l.Cooking[picked[6]] = struct{}{}
	l.Chopping[picked[5]] = struct{}{}
	for i, role := range specialOrder {
		l.Specials[picked[i]] = role
	}
	for len(pool) > 0 && rng.Float64() <= p.Probability {
		l.Chopping[draw()] = struct{}{}
	}
	for len(pool) > 0 && rng.Float64() <= p.Probability {
		l.Cooking[draw()] = struct{}{}
	}
	for _, c := range pool {
		l.Plain[c] = struct{}{}
	}
	g.placeholders.Each(func(c Cell) { l.Placeholders[c] = struct{}{} })
	return l, nil
}

// IsMapAccessible reports whether the free cells form a single 4-connected region.
// The set is consumed by the sweep.
func IsMapAccessible(free mapset.Set[Cell]) bool {
	if free.Size() == 0 {
		return true
	}
	var start Cell
	first := true
	free.Each(func(c Cell) {
		if first || lessCell(c, start) {
			start, first = c, false
		}
	})
	free.Remove(start)
	curr := []Cell{start}
	for len(curr) > 0 && free.Size() > 0 {
		var next []Cell
		for _, c := range curr {
			for _, d := range Directions {
				n := Cell{c.Row + d.Row, c.Col + d.Col}
				if free.Has(n) {
					free.Remove(n)
					next = append(next, n)
				}
			}
		}
		curr = next
	}
	return free.Size() == 0
}

// IsStationAccessible reports whether c has an in-bounds, unoccupied orthogonal neighbour.
func IsStationAccessible(c Cell, rows, cols int, occupied func(Cell) bool) bool {
	for _, d := range Directions {
		n := Cell{c.Row + d.Row, c.Col + d.Col}
		if n.Row < 0 || n.Row >= rows || n.Col < 0 || n.Col >= cols {
			continue
		}
		if !occupied(n) {
			return true
		}
	}
	return false
}

func lessCell(a, b Cell) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// SortCells orders cells row-major.
func SortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool { return lessCell(cells[i], cells[j]) })
}
