package indexdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"pixelcooked.dev/internal/pkg/clock"
	"pixelcooked.dev/internal/sim/catalogs"
	"pixelcooked.dev/internal/sim/kitchen"
	"pixelcooked.dev/internal/sim/tuning"
)

// SQLiteIndex is a queryable secondary index of rounds and their ticks. Writes go through a
// buffered queue drained by one writer goroutine; the journal stays the source of truth.
type SQLiteIndex struct {
	db    *sql.DB
	clock clock.Clock

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed  atomic.Bool
	dropped atomic.Uint64
}

type reqKind int

const (
	reqTick reqKind = iota + 1
	reqRoundStart
	reqRoundResult
	reqFlush
)

type req struct {
	kind reqKind

	roundID string
	tick    kitchen.TickLogEntry
	start   roundStartRow
	result  kitchen.Result
	at      string
	done    chan struct{}
}

type roundStartRow struct {
	RoundID       string
	Seed          int64
	Players       int
	RoundMs       int
	CatalogDigest string
	StartedAt     string
}

// RoundRow is one finished round as returned by TopRounds.
type RoundRow struct {
	RoundID    string
	Seed       int64
	Players    int
	RoundMs    int
	Score      int
	Delivered  int
	Ticks      uint64
	StartedAt  string
	FinishedAt string
}

type Stats struct {
	QueueDepth    int
	QueueCapacity int
	Dropped       uint64
}

func OpenSQLite(path string, clk clock.Clock) (*SQLiteIndex, error) {
	return openSQLite(path, clk, 65536)
}

func openSQLite(path string, clk clock.Clock, queue int) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if clk == nil {
		clk = clock.New()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db:    db,
		clock: clk,
		ch:    make(chan req, queue),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS catalogs (
			name TEXT PRIMARY KEY,
			digest TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rounds (
			round_id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			players INTEGER NOT NULL,
			round_ms INTEGER NOT NULL,
			catalog_digest TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			score INTEGER,
			delivered INTEGER,
			ticks INTEGER
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_players_score ON rounds(players, score DESC);`,
		`CREATE TABLE IF NOT EXISTS ticks (
			round_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			digest TEXT NOT NULL,
			inputs INTEGER NOT NULL,
			remaining_ms INTEGER NOT NULL,
			score INTEGER NOT NULL,
			raw_json TEXT NOT NULL,
			PRIMARY KEY (round_id, tick)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteIndex) Stats() Stats {
	return Stats{QueueDepth: len(s.ch), QueueCapacity: cap(s.ch), Dropped: s.dropped.Load()}
}

func (s *SQLiteIndex) enqueue(r req) {
	if s == nil || s.closed.Load() {
		return
	}
	select {
	case s.ch <- r:
	default:
		// Drop if the writer falls behind.
		s.dropped.Add(1)
	}
}

// ForRound returns a kitchen.TickLogger that indexes ticks under roundID.
func (s *SQLiteIndex) ForRound(roundID string) kitchen.TickLogger {
	return roundTicks{s: s, roundID: roundID}
}

type roundTicks struct {
	s       *SQLiteIndex
	roundID string
}

func (r roundTicks) WriteTick(entry kitchen.TickLogEntry) error {
	r.s.enqueue(req{kind: reqTick, roundID: r.roundID, tick: entry})
	return nil
}

func (s *SQLiteIndex) RecordRoundStart(cfg kitchen.KitchenConfig, catalogDigest string) {
	s.enqueue(req{kind: reqRoundStart, start: roundStartRow{
		RoundID:       cfg.RoundID,
		Seed:          cfg.Seed,
		Players:       cfg.Players,
		RoundMs:       cfg.RoundMs,
		CatalogDigest: catalogDigest,
		StartedAt:     s.now(),
	}})
}

func (s *SQLiteIndex) RecordRoundResult(res kitchen.Result) {
	s.enqueue(req{kind: reqRoundResult, result: res, at: s.now()})
}

// Flush waits until everything queued so far is committed, or ctx ends.
func (s *SQLiteIndex) Flush(ctx context.Context) error {
	if s.closed.Load() {
		return nil
	}
	done := make(chan struct{})
	select {
	case s.ch <- req{kind: reqFlush, done: done}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SQLiteIndex) now() string { return s.clock.Now().UTC().Format(time.RFC3339Nano) }

// UpsertCatalogs stores the canonical JSON and digest of every catalogue and of the applied
// tuning values.
func (s *SQLiteIndex) UpsertCatalogs(cats *catalogs.Catalogs, tune tuning.Tuning) error {
	if s == nil {
		return nil
	}
	now := s.now()

	type kv struct {
		name   string
		digest string
		json   []byte
	}
	var rows []kv
	defs := make([]catalogs.IngredientDef, 0, len(cats.Ingredients.Palette))
	for _, id := range cats.Ingredients.Palette {
		defs = append(defs, cats.Ingredients.Defs[id])
	}
	if b, _ := json.Marshal(defs); len(b) > 0 {
		rows = append(rows, kv{name: "ingredients_defs", digest: cats.Ingredients.DefsDigest, json: b})
	}
	if b, _ := json.Marshal(cats.Ingredients.Palette); len(b) > 0 {
		rows = append(rows, kv{name: "ingredients_palette", digest: cats.Ingredients.PaletteDigest, json: b})
	}
	if b, _ := json.Marshal(cats.Crates.ByRole); len(b) > 0 {
		rows = append(rows, kv{name: "crates", digest: cats.Crates.Digest, json: b})
	}
	if b, _ := json.Marshal(cats.Recipes.List); len(b) > 0 {
		rows = append(rows, kv{name: "recipes", digest: cats.Recipes.Digest, json: b})
	}
	{
		b, _ := json.Marshal(tune)
		sum := sha256.Sum256(b)
		rows = append(rows, kv{name: "tuning", digest: hex.EncodeToString(sum[:]), json: b})
	}

	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1')`); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('catalog_digest',?)`, cats.Digest()); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO catalogs(name,digest,json,updated_at) VALUES(?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range rows {
		if r.digest == "" || len(r.json) == 0 {
			continue
		}
		if _, err := stmt.Exec(r.name, r.digest, string(r.json), now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// TopRounds lists finished rounds by descending score. players <= 0 means any player count.
func (s *SQLiteIndex) TopRounds(ctx context.Context, players, limit int) ([]RoundRow, error) {
	if err := s.Flush(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT round_id, seed, players, round_ms, score, delivered, ticks, started_at, finished_at
		FROM rounds
		WHERE finished_at IS NOT NULL AND (? <= 0 OR players = ?)
		ORDER BY score DESC, finished_at ASC
		LIMIT ?`, players, players, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RoundRow
	for rows.Next() {
		var r RoundRow
		var ticks int64
		if err := rows.Scan(&r.RoundID, &r.Seed, &r.Players, &r.RoundMs, &r.Score, &r.Delivered, &ticks, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		r.Ticks = uint64(ticks)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()

	insertTick, _ := s.db.Prepare(`INSERT OR REPLACE INTO ticks(round_id,tick,digest,inputs,remaining_ms,score,raw_json) VALUES(?,?,?,?,?,?,?)`)
	insertRound, _ := s.db.Prepare(`INSERT OR REPLACE INTO rounds(round_id,seed,players,round_ms,catalog_digest,started_at) VALUES(?,?,?,?,?,?)`)
	finishRound, _ := s.db.Prepare(`UPDATE rounds SET finished_at=?, score=?, delivered=?, ticks=? WHERE round_id=?`)
	defer func() {
		for _, st := range []*sql.Stmt{insertTick, insertRound, finishRound} {
			if st != nil {
				_ = st.Close()
			}
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 2000
		commitMaxWait = 2 * time.Second
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	exec := func(st *sql.Stmt, args ...any) {
		if st == nil || tx == nil {
			return
		}
		if _, err := tx.Stmt(st).Exec(args...); err != nil {
			rollback()
			return
		}
		opCount++
	}

	for r := range s.ch {
		if r.kind == reqFlush {
			commit()
			close(r.done)
			continue
		}
		begin()
		if tx == nil {
			continue
		}
		switch r.kind {
		case reqTick:
			b, _ := json.Marshal(r.tick)
			exec(insertTick, r.roundID, int64(r.tick.Tick), r.tick.Digest, len(r.tick.Inputs), r.tick.RemainingMs, r.tick.Score, string(b))
		case reqRoundStart:
			st := r.start
			exec(insertRound, st.RoundID, st.Seed, st.Players, st.RoundMs, st.CatalogDigest, st.StartedAt)
		case reqRoundResult:
			res := r.result
			exec(finishRound, r.at, res.Score, res.Delivered, int64(res.Ticks), res.RoundID)
			// Results are rare and worth having on disk right away.
			commit()
		}
		if tx != nil && (opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait) {
			commit()
		}
	}

	commit()
}
