package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pixelcooked.dev/internal/sim/catalogs"
	"pixelcooked.dev/internal/sim/kitchen"
	"pixelcooked.dev/internal/sim/tuning"
)

// gameFlags are shared by every command that builds a kitchen.
type gameFlags struct {
	players    int
	minutes    int
	seed       int64
	configDir  string
	tuningPath string
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.players, "players", "n", 2, "number of players (1-4)")
	cmd.Flags().IntVar(&f.minutes, "minutes", 0, "round length in minutes (default: tuning default_round_minutes)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "map and order seed (default: random)")
	cmd.Flags().StringVar(&f.configDir, "configs", "", "directory with ingredients.yaml, crates.yaml and recipes.yaml (default: built-in)")
	cmd.Flags().StringVar(&f.tuningPath, "tuning", "", "path to tuning.yaml (default: built-in values)")
}

func loadGameConfig(f gameFlags) (tuning.Tuning, *catalogs.Catalogs, error) {
	tune, err := tuning.Load(strings.TrimSpace(f.tuningPath))
	if err != nil {
		return tune, nil, fmt.Errorf("load tuning: %w", err)
	}
	var cats *catalogs.Catalogs
	if dir := strings.TrimSpace(f.configDir); dir != "" {
		cats, err = catalogs.Load(dir)
	} else {
		cats, err = catalogs.LoadDefault()
	}
	if err != nil {
		return tune, nil, fmt.Errorf("load catalogs: %w", err)
	}
	if f.minutes > 0 && !tune.OffersMinutes(f.minutes) {
		return tune, nil, fmt.Errorf("--minutes %d: choose one of %v", f.minutes, tune.RoundMinutes)
	}
	return tune, cats, nil
}

func (f gameFlags) kitchenConfig(tune tuning.Tuning, roundID string, seed int64) kitchen.KitchenConfig {
	cfg := kitchen.ConfigFromTuning(tune, f.players, f.minutes, seed)
	cfg.RoundID = roundID
	return cfg
}
