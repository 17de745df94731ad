package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"pixelcooked.dev/internal/persistence/indexdb"
	"pixelcooked.dev/internal/persistence/leaderboard"
	persistlog "pixelcooked.dev/internal/persistence/log"
	"pixelcooked.dev/internal/persistence/manifest"
	"pixelcooked.dev/internal/pkg/clock"
	"pixelcooked.dev/internal/redis"
	"pixelcooked.dev/internal/sim/catalogs"
	"pixelcooked.dev/internal/sim/kitchen"
	"pixelcooked.dev/internal/sim/tuning"
	"pixelcooked.dev/internal/tui"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenmap(t *testing.T) {
	out, err := execute(t, newGenmapCmd(), "--players", "3", "--seed", "12", "--legend")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1+9+1)
	assert.Contains(t, lines[0], "seed=12 players=3 grid=9x15")
	for _, l := range lines[1:10] {
		assert.Len(t, l, 15)
	}
	assert.Equal(t, "#", lines[1][:1])

	again, err := execute(t, newGenmapCmd(), "--players", "3", "--seed", "12", "--legend")
	require.NoError(t, err)
	assert.Equal(t, out, again)

	_, err = execute(t, newGenmapCmd(), "--players", "5")
	assert.Error(t, err)
	_, err = execute(t, newGenmapCmd(), "--minutes", "7")
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	out, err := execute(t, newSchemaCmd())
	require.NoError(t, err)
	j := gjson.Parse(out)
	assert.Equal(t, "integer", j.Get("properties.tick.type").String())
	assert.Equal(t, "array", j.Get("properties.stations.type").String())
}

func TestScores_RequiresSource(t *testing.T) {
	_, err := execute(t, newScoresCmd())
	assert.Error(t, err)
}

func TestScores_FromRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err)
	board, err := leaderboard.New(&leaderboard.Config{Client: client, Clock: clock.New()})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, board.Submit(ctx, kitchen.Result{RoundID: "round_a", Players: 2, Seed: 1, Score: 3}))
	require.NoError(t, board.Submit(ctx, kitchen.Result{RoundID: "round_b", Players: 2, Seed: 2, Score: 8}))

	out, err := execute(t, newScoresCmd(), "--redis", "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "1 "))
	assert.Contains(t, lines[1], "round_b")
	assert.Contains(t, lines[2], "round_a")
}

func TestScores_FromDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.sqlite")
	idx, err := indexdb.OpenSQLite(path, nil)
	require.NoError(t, err)
	idx.RecordRoundStart(kitchen.KitchenConfig{RoundID: "solo", Players: 1, RoundMs: 60000}, "d")
	idx.RecordRoundResult(kitchen.Result{RoundID: "solo", Players: 1, Score: 4})
	require.NoError(t, idx.Close())

	out, err := execute(t, newScoresCmd(), "--db", path, "--players", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "solo")

	out, err = execute(t, newScoresCmd(), "--db", path, "--players", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "solo")
}

func TestRound_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	mr := miniredis.RunT(t)
	cats, err := catalogs.LoadDefault()
	require.NoError(t, err)

	sf := sinkFlags{
		dataDir:      dir,
		journal:      true,
		dbPath:       filepath.Join(dir, "index.sqlite"),
		redisURL:     "redis://" + mr.Addr() + "/0",
		observerAddr: "127.0.0.1:0",
	}
	cfg := kitchen.KitchenConfig{RoundID: "e2e", Players: 2, Seed: 4, RoundMs: 150, TickMs: 15}
	logger := log.New(io.Discard, "", 0)
	r, err := openRound(cfg, cats, tuning.Defaults(), sf, clock.New(), logger)
	require.NoError(t, err)
	closed := false
	defer func() {
		if !closed {
			_ = r.Close()
		}
	}()

	resp, err := http.Get("http://" + r.httpAddr + "/observer/bootstrap")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "e2e", gjson.GetBytes(body, "round_id").String())

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 40)
	defer screen.Fini()
	game := tui.NewGame(screen, r.k, tui.Options{Logger: logger})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	done := make(chan kitchen.Result, 1)
	go func() {
		res, err := game.Run(ctx)
		assert.NoError(t, err)
		done <- res
	}()
	var res kitchen.Result
wait:
	for {
		select {
		case res = <-done:
			break wait
		case <-time.After(20 * time.Millisecond):
			screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
		case <-ctx.Done():
			t.Fatal("round did not finish")
		}
	}
	require.Equal(t, "e2e", res.RoundID)
	require.Equal(t, uint64(10), res.Ticks)

	r.finish(ctx, res)
	require.NoError(t, r.Close())
	closed = true

	m, err := manifest.Read(manifest.Path(roundDir(dir, "e2e")))
	require.NoError(t, err)
	assert.Equal(t, "e2e", m.Header.RoundID)
	assert.Equal(t, cats.Digest(), m.CatalogDigest)

	files, err := persistlog.ListJournalFiles(roundDir(dir, "e2e"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	var entries int
	for _, f := range files {
		require.NoError(t, persistlog.ReadTicks(f, func(kitchen.TickLogEntry) error {
			entries++
			return nil
		}))
	}
	assert.Equal(t, int(res.Ticks)+1, entries)

	idx, err := indexdb.OpenSQLite(sf.dbPath, nil)
	require.NoError(t, err)
	defer idx.Close()
	rows, err := idx.TopRounds(ctx, 2, 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "e2e", rows[0].RoundID)

	_, err = mr.ZScore("pixelcooked:scores:2", "e2e")
	assert.NoError(t, err)
}
