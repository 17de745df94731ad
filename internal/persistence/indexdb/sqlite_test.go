package indexdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelcooked.dev/internal/pkg/clock"
	"pixelcooked.dev/internal/sim/catalogs"
	"pixelcooked.dev/internal/sim/kitchen"
	"pixelcooked.dev/internal/sim/tuning"
)

func openTest(t *testing.T) (*SQLiteIndex, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	idx, err := OpenSQLite(filepath.Join(t.TempDir(), "index", "rounds.sqlite"), clk)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx, clk
}

func TestSQLiteIndex_UpsertCatalogs(t *testing.T) {
	idx, _ := openTest(t)
	cats, err := catalogs.LoadDefault()
	require.NoError(t, err)
	tune := tuning.Defaults()

	require.NoError(t, idx.UpsertCatalogs(cats, tune))
	// Idempotent.
	require.NoError(t, idx.UpsertCatalogs(cats, tune))

	var n int
	require.NoError(t, idx.db.QueryRow(`SELECT COUNT(*) FROM catalogs`).Scan(&n))
	assert.Equal(t, 5, n)

	var digest string
	require.NoError(t, idx.db.QueryRow(`SELECT value FROM meta WHERE key='catalog_digest'`).Scan(&digest))
	assert.Equal(t, cats.Digest(), digest)

	require.NoError(t, idx.db.QueryRow(`SELECT digest FROM catalogs WHERE name='recipes'`).Scan(&digest))
	assert.Equal(t, cats.Recipes.Digest, digest)
}

func TestSQLiteIndex_RoundsAndTicks(t *testing.T) {
	idx, clk := openTest(t)
	cats, err := catalogs.LoadDefault()
	require.NoError(t, err)

	cfg := kitchen.KitchenConfig{RoundID: "r1", Players: 2, Seed: 7, RoundMs: 150, TickMs: 15}
	k, err := kitchen.New(cfg, cats)
	require.NoError(t, err)
	k.SetTickLogger(idx.ForRound(cfg.RoundID))
	idx.RecordRoundStart(k.Config(), cats.Digest())

	var last string
	for !k.Over() {
		_, last = k.StepOnce(nil)
	}
	clk.Advance(time.Minute)
	idx.RecordRoundResult(k.Result())

	// Two more finished rounds with known scores.
	for i, score := range []int{4, 9} {
		c := kitchen.KitchenConfig{RoundID: []string{"r2", "r3"}[i], Players: 2, Seed: 1, RoundMs: 60000}
		idx.RecordRoundStart(c, cats.Digest())
		idx.RecordRoundResult(kitchen.Result{RoundID: c.RoundID, Players: 2, Seed: 1, Score: score, Ticks: 4000, RoundMs: 60000})
	}
	// A single-player round and an unfinished one stay out of the two-player listing.
	idx.RecordRoundStart(kitchen.KitchenConfig{RoundID: "solo", Players: 1, Seed: 3, RoundMs: 60000}, cats.Digest())
	idx.RecordRoundResult(kitchen.Result{RoundID: "solo", Players: 1, Score: 20})
	idx.RecordRoundStart(kitchen.KitchenConfig{RoundID: "open", Players: 2, Seed: 3, RoundMs: 60000}, cats.Digest())

	ctx := context.Background()
	rows, err := idx.TopRounds(ctx, 2, 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"r3", "r2", "r1"}, []string{rows[0].RoundID, rows[1].RoundID, rows[2].RoundID})
	assert.Equal(t, 9, rows[0].Score)
	assert.Equal(t, k.Result().Ticks, rows[2].Ticks)
	assert.Equal(t, "2026-03-01T12:01:00Z", rows[2].FinishedAt)

	all, err := idx.TopRounds(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "solo", all[0].RoundID)

	var ticks int
	require.NoError(t, idx.db.QueryRow(`SELECT COUNT(*) FROM ticks WHERE round_id='r1'`).Scan(&ticks))
	// The closing tick is logged too.
	assert.Equal(t, int(k.Result().Ticks)+1, ticks)

	var digest string
	require.NoError(t, idx.db.QueryRow(`SELECT digest FROM ticks WHERE round_id='r1' ORDER BY tick DESC LIMIT 1`).Scan(&digest))
	assert.Equal(t, last, digest)
}

func TestSQLiteIndex_DropsWhenQueueFull(t *testing.T) {
	s := &SQLiteIndex{ch: make(chan req, 1)}
	w := s.ForRound("r")
	require.NoError(t, w.WriteTick(kitchen.TickLogEntry{Tick: 0}))
	require.NoError(t, w.WriteTick(kitchen.TickLogEntry{Tick: 1}))
	require.NoError(t, w.WriteTick(kitchen.TickLogEntry{Tick: 2}))

	st := s.Stats()
	assert.Equal(t, 1, st.QueueDepth)
	assert.Equal(t, 1, st.QueueCapacity)
	assert.Equal(t, uint64(2), st.Dropped)
}

func TestSQLiteIndex_WritesAfterCloseAreIgnored(t *testing.T) {
	idx, _ := openTest(t)
	require.NoError(t, idx.Close())
	require.NoError(t, idx.Close())
	require.NoError(t, idx.ForRound("r").WriteTick(kitchen.TickLogEntry{}))
	assert.Equal(t, uint64(0), idx.Stats().Dropped)
	assert.NoError(t, idx.Flush(context.Background()))
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite("", nil)
	assert.Error(t, err)
}
