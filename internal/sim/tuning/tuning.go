package tuning

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"pixelcooked.dev/internal/schemas"
)

// Tuning holds the numeric knobs of a round. Zero fields in a loaded file keep their defaults.
type Tuning struct {
	TickDurationMs      int   `yaml:"tick_duration_ms"`
	RoundMinutes        []int `yaml:"round_minutes"`
	DefaultRoundMinutes int   `yaml:"default_round_minutes"`

	CanvasLength  float64 `yaml:"canvas_length"`
	ColsPerPlayer int     `yaml:"cols_per_player"`
	RowsPerPlayer int     `yaml:"rows_per_player"`

	PlayerRatio          float64 `yaml:"player_ratio"`
	IngredientRatio      float64 `yaml:"ingredient_ratio"`
	InteractRadiusFactor float64 `yaml:"interact_radius_factor"`

	ChoppingMs int `yaml:"chopping_ms"`
	CookingMs  int `yaml:"cooking_ms"`

	ProbabilityBase float64 `yaml:"probability_base"`
	ProbabilityStep float64 `yaml:"probability_step"`
	MinStations     int     `yaml:"min_stations"`
	MaxRetries      int     `yaml:"max_retries"`
	MaxMisses       int     `yaml:"max_misses"`
	MapAttempts     int     `yaml:"map_attempts"`

	// HoldTimeoutMs is how long a terminal key counts as held after its last repeat.
	HoldTimeoutMs int `yaml:"hold_timeout_ms"`
}

func Defaults() Tuning {
	return Tuning{
		TickDurationMs:      15,
		RoundMinutes:        []int{5, 10, 15},
		DefaultRoundMinutes: 5,

		CanvasLength:  1000,
		ColsPerPlayer: 5,
		RowsPerPlayer: 3,

		PlayerRatio:          0.8,
		IngredientRatio:      0.6,
		InteractRadiusFactor: 1.5,

		ChoppingMs: 5000,
		CookingMs:  10000,

		ProbabilityBase: 0.5,
		ProbabilityStep: 0.1,
		MinStations:     7,
		MaxRetries:      10,
		MaxMisses:       3,
		MapAttempts:     32,

		HoldTimeoutMs: 150,
	}
}

// Load reads path over Defaults(). An empty path returns the defaults.
func Load(path string) (Tuning, error) {
	t := Defaults()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := schemas.ValidateYAML("tuning.schema.json", raw); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// Validate checks constraints that span fields.
func (t Tuning) Validate() error {
	if !slices.Contains(t.RoundMinutes, t.DefaultRoundMinutes) {
		return fmt.Errorf("default_round_minutes %d not in round_minutes %v", t.DefaultRoundMinutes, t.RoundMinutes)
	}
	if t.IngredientRatio > t.PlayerRatio {
		return fmt.Errorf("ingredient_ratio %v larger than player_ratio %v", t.IngredientRatio, t.PlayerRatio)
	}
	if t.ProbabilityBase+2*t.ProbabilityStep > 1 {
		return fmt.Errorf("generation probability exceeds 1 at 4 players")
	}
	return nil
}

// Probability is the station growth probability for n players.
func (t Tuning) Probability(players int) float64 {
	p := t.ProbabilityBase + t.ProbabilityStep*float64(players-2)
	return min(max(p, 0), 1)
}

// OffersMinutes reports whether m is one of the offered round lengths.
func (t Tuning) OffersMinutes(m int) bool { return slices.Contains(t.RoundMinutes, m) }
