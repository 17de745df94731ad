package tuning

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoad_EmptyPathIsDefaults(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.TickDurationMs != 15 || got.DefaultRoundMinutes != 5 || got.CanvasLength != 1000 {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoad_OverridesKeepOtherDefaults(t *testing.T) {
	got, err := Load(writeFile(t, "tick_duration_ms: 20\ncooking_ms: 8000\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.TickDurationMs != 20 || got.CookingMs != 8000 {
		t.Fatalf("overrides not applied: %+v", got)
	}
	if got.ChoppingMs != 5000 || got.PlayerRatio != 0.8 {
		t.Fatalf("defaults lost: %+v", got)
	}
}

func TestLoad_Rejects(t *testing.T) {
	for _, body := range []string{
		"tick_duration_ms: -1\n",
		"bogus: true\n",
		"default_round_minutes: 7\n",
		"ingredient_ratio: 0.9\n",
		"probability_base: 0.9\n",
		"tick_duration_ms: [1\n",
	} {
		if _, err := Load(writeFile(t, body)); err == nil {
			t.Fatalf("expected %q to be rejected", body)
		}
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestProbability(t *testing.T) {
	d := Defaults()
	for players, want := range map[int]float64{1: 0.4, 2: 0.5, 3: 0.6, 4: 0.7} {
		if got := d.Probability(players); math.Abs(got-want) > 1e-9 {
			t.Fatalf("players=%d p=%v want %v", players, got, want)
		}
	}
}

func TestOffersMinutes(t *testing.T) {
	d := Defaults()
	for _, m := range []int{5, 10, 15} {
		if !d.OffersMinutes(m) {
			t.Fatalf("%d minutes not offered", m)
		}
	}
	if d.OffersMinutes(7) {
		t.Fatalf("7 minutes offered")
	}
}
