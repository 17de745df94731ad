package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"pixelcooked.dev/internal/persistence/indexdb"
	"pixelcooked.dev/internal/persistence/leaderboard"
	persistlog "pixelcooked.dev/internal/persistence/log"
	"pixelcooked.dev/internal/persistence/manifest"
	"pixelcooked.dev/internal/pkg/clock"
	"pixelcooked.dev/internal/redis"
	"pixelcooked.dev/internal/sim/catalogs"
	"pixelcooked.dev/internal/sim/kitchen"
	"pixelcooked.dev/internal/sim/tuning"
	"pixelcooked.dev/internal/transport/observer"
)

// sinkFlags select the optional outputs of a round. Empty strings disable a sink.
type sinkFlags struct {
	dataDir      string
	journal      bool
	dbPath       string
	redisURL     string
	observerAddr string
}

// round is a kitchen plus everything recording or serving it.
type round struct {
	k   *kitchen.Kitchen
	dir string
	log *log.Logger

	journal  *persistlog.TickLogger
	idx      *indexdb.SQLiteIndex
	redis    redis.Client
	board    *leaderboard.Board
	obs      *observer.Server
	httpSrv  *http.Server
	httpAddr string
}

func roundDir(dataDir, roundID string) string {
	return filepath.Join(dataDir, "rounds", roundID)
}

// openRound builds the kitchen and wires the sinks named in sf. On error everything opened
// so far is closed again.
func openRound(cfg kitchen.KitchenConfig, cats *catalogs.Catalogs, tune tuning.Tuning, sf sinkFlags, clk clock.Clock, logger *log.Logger) (_ *round, err error) {
	k, err := kitchen.New(cfg, cats)
	if err != nil {
		return nil, fmt.Errorf("kitchen: %w", err)
	}
	cfg = k.Config()
	r := &round{k: k, dir: roundDir(sf.dataDir, cfg.RoundID), log: logger}
	defer func() {
		if err != nil {
			_ = r.Close()
		}
	}()

	var loggers []kitchen.TickLogger
	if sf.journal {
		if err := manifest.Write(manifest.Path(r.dir), manifest.New(cfg, cats.Digest(), clk.Now())); err != nil {
			return nil, fmt.Errorf("write manifest: %w", err)
		}
		r.journal = persistlog.NewTickLogger(r.dir, clk)
		loggers = append(loggers, r.journal)
	}

	if p := strings.TrimSpace(sf.dbPath); p != "" {
		r.idx, err = indexdb.OpenSQLite(p, clk)
		if err != nil {
			return nil, fmt.Errorf("open index: %w", err)
		}
		if err := r.idx.UpsertCatalogs(cats, tune); err != nil {
			logger.Printf("index: upsert catalogs: %v", err)
		}
		r.idx.RecordRoundStart(cfg, cats.Digest())
		loggers = append(loggers, r.idx.ForRound(cfg.RoundID))
	}
	if len(loggers) > 0 {
		k.SetTickLogger(kitchen.TeeTickLoggers(loggers...))
	}

	if u := strings.TrimSpace(sf.redisURL); u != "" {
		r.redis, err = redis.NewFromURL(u)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		r.board, err = leaderboard.New(&leaderboard.Config{Client: r.redis, Clock: clk})
		if err != nil {
			return nil, err
		}
	}

	if a := strings.TrimSpace(sf.observerAddr); a != "" {
		ln, err := net.Listen("tcp", a)
		if err != nil {
			return nil, fmt.Errorf("observer listen: %w", err)
		}
		r.obs = observer.NewServer(k, logger)
		r.httpSrv = &http.Server{Handler: r.obs.Handler(), ReadHeaderTimeout: 5 * time.Second}
		r.httpAddr = ln.Addr().String()
		go func() {
			if err := r.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("observer: %v", err)
			}
		}()
		logger.Printf("observer listening on http://%s/observer/ws", r.httpAddr)
	}

	logger.Printf("round %s: players=%d seed=%d round_ms=%d grid=%dx%d attempts=%d",
		cfg.RoundID, cfg.Players, cfg.Seed, cfg.RoundMs, cfg.Rows(), cfg.Cols(), k.Layout().Attempts)
	return r, nil
}

// finish records a finished round. A zero result (round abandoned) records nothing.
func (r *round) finish(ctx context.Context, res kitchen.Result) {
	if r.obs != nil {
		r.obs.Close()
	}
	if res.RoundID == "" {
		return
	}
	if r.idx != nil {
		r.idx.RecordRoundResult(res)
	}
	if r.board != nil {
		if err := r.board.Submit(ctx, res); err != nil {
			r.log.Printf("leaderboard: %v", err)
		} else if rank, err := r.board.Rank(ctx, res.Players, res.RoundID); err == nil {
			r.log.Printf("leaderboard: round %s ranks #%d for %d players", res.RoundID, rank, res.Players)
		}
	}
}

func (r *round) Close() error {
	var errs []error
	if r.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		errs = append(errs, r.httpSrv.Shutdown(ctx))
		cancel()
	}
	if r.journal != nil {
		errs = append(errs, r.journal.Close())
	}
	if r.idx != nil {
		errs = append(errs, r.idx.Close())
	}
	if r.redis != nil {
		errs = append(errs, r.redis.Close())
	}
	return errors.Join(errs...)
}
