package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"pixelcooked.dev/internal/pkg/clock"
	"pixelcooked.dev/internal/pkg/idgen"
	"pixelcooked.dev/internal/tui"
)

func newPlayCmd() *cobra.Command {
	var (
		gf      gameFlags
		sf      sinkFlags
		logPath string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a round in the terminal",
		Long: `Play a round in the terminal. The round is journalled under <data>/rounds/<round id>/
and can be checked later with the replay tool. Use --db, --redis and --observer to also index
the round, post it to the leaderboard and stream frames to observers.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("seed") {
				gf.seed = time.Now().UnixNano()
			}
			if strings.TrimSpace(logPath) == "" {
				logPath = filepath.Join(sf.dataDir, "pixelcooked.log")
			}
			return runPlay(cmd, gf, sf, logPath)
		},
	}
	gf.register(cmd)
	cmd.Flags().StringVar(&sf.dataDir, "data", "./data", "runtime data directory")
	cmd.Flags().BoolVar(&sf.journal, "journal", true, "write the round manifest and tick journal")
	cmd.Flags().StringVar(&sf.dbPath, "db", "", "SQLite round index path (empty to disable)")
	cmd.Flags().StringVar(&sf.redisURL, "redis", "", "Redis URL for the leaderboard, e.g. redis://localhost:6379/0 (empty to disable)")
	cmd.Flags().StringVar(&sf.observerAddr, "observer", "", "observer listen address, e.g. 127.0.0.1:8080 (empty to disable)")
	cmd.Flags().StringVar(&logPath, "log", "", "log file while the game owns the terminal (default: <data>/pixelcooked.log)")
	return cmd
}

func runPlay(cmd *cobra.Command, gf gameFlags, sf sinkFlags, logPath string) error {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return err
	}
	lf, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer lf.Close()
	logger := log.New(lf, "[pixelcooked] ", log.LstdFlags|log.Lmicroseconds)

	tune, cats, err := loadGameConfig(gf)
	if err != nil {
		return err
	}
	clk := clock.New()
	roundID := idgen.NewUUID("round").Generate()
	cfg := gf.kitchenConfig(tune, roundID, gf.seed)

	r, err := openRound(cfg, cats, tune, sf, clk, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := r.Close(); err != nil {
			logger.Printf("close round: %v", err)
		}
	}()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	game := tui.NewGame(screen, r.k, tui.Options{
		HoldTimeout: time.Duration(tune.HoldTimeoutMs) * time.Millisecond,
		Clock:       clk,
		Logger:      logger,
	})
	res, err := game.Run(ctx)
	screen.Fini()
	if err != nil && ctx.Err() == nil {
		return err
	}
	r.finish(context.Background(), res)

	out := cmd.OutOrStdout()
	if res.RoundID == "" {
		fmt.Fprintln(out, "round abandoned")
		return nil
	}
	fmt.Fprintf(out, "round %s: score %d, %d dishes delivered\n", res.RoundID, res.Score, res.Delivered)
	if sf.journal {
		fmt.Fprintf(out, "journal: %s\n", r.dir)
	}
	return nil
}
