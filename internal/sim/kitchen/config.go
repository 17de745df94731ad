package kitchen

import (
	"errors"
	"fmt"

	"pixelcooked.dev/internal/sim/kitchen/logic/mapgen"
	"pixelcooked.dev/internal/sim/tuning"
)

const MaxPlayers = 4

var ErrBadPlayerCount = errors.New("kitchen: player count must be 1..4")

type KitchenConfig struct {
	RoundID string `json:"round_id"`
	Players int    `json:"players"`
	Seed    int64  `json:"seed"`

	RoundMs int `json:"round_ms"`
	TickMs  int `json:"tick_ms"`

	CanvasLength  float64 `json:"canvas_length"`
	ColsPerPlayer int     `json:"cols_per_player"`
	RowsPerPlayer int     `json:"rows_per_player"`

	PlayerRatio          float64 `json:"player_ratio"`
	IngredientRatio      float64 `json:"ingredient_ratio"`
	InteractRadiusFactor float64 `json:"interact_radius_factor"`

	ChoppingMs int `json:"chopping_ms"`
	CookingMs  int `json:"cooking_ms"`

	ProbabilityBase float64 `json:"probability_base"`
	ProbabilityStep float64 `json:"probability_step"`
	MinStations     int     `json:"min_stations"`
	MaxRetries      int     `json:"max_retries"`
	MaxMisses       int     `json:"max_misses"`
	MapAttempts     int     `json:"map_attempts"`
}

// ConfigFromTuning builds a round config. minutes <= 0 picks the tuning default.
func ConfigFromTuning(t tuning.Tuning, players, minutes int, seed int64) KitchenConfig {
	if minutes <= 0 {
		minutes = t.DefaultRoundMinutes
	}
	return KitchenConfig{
		Players:              players,
		Seed:                 seed,
		RoundMs:              minutes * 60_000,
		TickMs:               t.TickDurationMs,
		CanvasLength:         t.CanvasLength,
		ColsPerPlayer:        t.ColsPerPlayer,
		RowsPerPlayer:        t.RowsPerPlayer,
		PlayerRatio:          t.PlayerRatio,
		IngredientRatio:      t.IngredientRatio,
		InteractRadiusFactor: t.InteractRadiusFactor,
		ChoppingMs:           t.ChoppingMs,
		CookingMs:            t.CookingMs,
		ProbabilityBase:      t.ProbabilityBase,
		ProbabilityStep:      t.ProbabilityStep,
		MinStations:          t.MinStations,
		MaxRetries:           t.MaxRetries,
		MaxMisses:            t.MaxMisses,
		MapAttempts:          t.MapAttempts,
	}
}

func (c *KitchenConfig) applyDefaults() {
	d := tuning.Defaults()
	if c.Players == 0 {
		c.Players = 1
	}
	if c.RoundMs <= 0 {
		c.RoundMs = d.DefaultRoundMinutes * 60_000
	}
	if c.TickMs <= 0 {
		c.TickMs = d.TickDurationMs
	}
	if c.CanvasLength <= 0 {
		c.CanvasLength = d.CanvasLength
	}
	if c.ColsPerPlayer <= 0 {
		c.ColsPerPlayer = d.ColsPerPlayer
	}
	if c.RowsPerPlayer <= 0 {
		c.RowsPerPlayer = d.RowsPerPlayer
	}
	if c.PlayerRatio <= 0 {
		c.PlayerRatio = d.PlayerRatio
	}
	if c.IngredientRatio <= 0 {
		c.IngredientRatio = d.IngredientRatio
	}
	if c.InteractRadiusFactor <= 0 {
		c.InteractRadiusFactor = d.InteractRadiusFactor
	}
	if c.ChoppingMs <= 0 {
		c.ChoppingMs = d.ChoppingMs
	}
	if c.CookingMs <= 0 {
		c.CookingMs = d.CookingMs
	}
	if c.ProbabilityBase <= 0 {
		c.ProbabilityBase = d.ProbabilityBase
	}
	if c.ProbabilityStep < 0 {
		c.ProbabilityStep = d.ProbabilityStep
	}
	if c.MinStations <= 0 {
		c.MinStations = d.MinStations
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.MaxMisses <= 0 {
		c.MaxMisses = d.MaxMisses
	}
	if c.MapAttempts <= 0 {
		c.MapAttempts = d.MapAttempts
	}
}

func (c KitchenConfig) Validate() error {
	if c.Players < 1 || c.Players > MaxPlayers {
		return fmt.Errorf("%w: got %d", ErrBadPlayerCount, c.Players)
	}
	if c.IngredientRatio > c.PlayerRatio || c.PlayerRatio > 1 {
		return fmt.Errorf("kitchen: bad size ratios player=%v ingredient=%v", c.PlayerRatio, c.IngredientRatio)
	}
	if c.RoundMs%c.TickMs != 0 {
		// The countdown has to land on zero exactly.
		return fmt.Errorf("kitchen: round_ms %d not a multiple of tick_ms %d", c.RoundMs, c.TickMs)
	}
	return nil
}

func (c KitchenConfig) Rows() int { return c.RowsPerPlayer * c.Players }
func (c KitchenConfig) Cols() int { return c.ColsPerPlayer * c.Players }

func (c KitchenConfig) CellLength() float64 { return c.CanvasLength / float64(c.Cols()) }

// Velocity is the per-tick movement in canvas pixels: one pixel per player.
func (c KitchenConfig) Velocity() float64 { return float64(c.Players) }

func (c KitchenConfig) Probability() float64 {
	p := c.ProbabilityBase + c.ProbabilityStep*float64(c.Players-2)
	return min(max(p, 0), 1)
}

func (c KitchenConfig) mapParams() mapgen.Params {
	return mapgen.Params{
		Rows:        c.Rows(),
		Cols:        c.Cols(),
		Probability: c.Probability(),
		MinStations: c.MinStations,
		MaxRetries:  c.MaxRetries,
		MaxMisses:   c.MaxMisses,
		MaxAttempts: c.MapAttempts,
	}
}
