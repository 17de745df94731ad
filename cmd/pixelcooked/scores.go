package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pixelcooked.dev/internal/persistence/indexdb"
	"pixelcooked.dev/internal/persistence/leaderboard"
	"pixelcooked.dev/internal/pkg/clock"
	"pixelcooked.dev/internal/redis"
)

func newScoresCmd() *cobra.Command {
	var (
		players  int
		limit    int
		redisURL string
		dbPath   string
	)
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "List the best rounds from the Redis leaderboard or the SQLite index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			switch {
			case strings.TrimSpace(redisURL) != "":
				return scoresFromRedis(ctx, cmd, redisURL, players, limit)
			case strings.TrimSpace(dbPath) != "":
				return scoresFromDB(ctx, cmd, dbPath, players, limit)
			default:
				return errors.New("one of --redis or --db is required")
			}
		},
	}
	cmd.Flags().IntVarP(&players, "players", "n", 2, "player count to rank (the SQLite index also accepts 0 for all)")
	cmd.Flags().IntVar(&limit, "limit", 10, "rows to show")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis leaderboard URL")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite round index path")
	return cmd
}

func scoresFromRedis(ctx context.Context, cmd *cobra.Command, url string, players, limit int) error {
	client, err := redis.NewFromURL(url)
	if err != nil {
		return err
	}
	defer client.Close()
	board, err := leaderboard.New(&leaderboard.Config{Client: client, Clock: clock.New()})
	if err != nil {
		return err
	}
	entries, err := board.Top(ctx, players, limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSCORE\tDELIVERED\tPLAYERS\tSEED\tROUND")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%s\n", e.Rank, e.Score, e.Delivered, e.Players, e.Seed, e.RoundID)
	}
	return tw.Flush()
}

func scoresFromDB(ctx context.Context, cmd *cobra.Command, path string, players, limit int) error {
	idx, err := indexdb.OpenSQLite(path, nil)
	if err != nil {
		return err
	}
	defer idx.Close()
	rows, err := idx.TopRounds(ctx, players, limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSCORE\tDELIVERED\tPLAYERS\tSEED\tROUND")
	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%s\n", i+1, r.Score, r.Delivered, r.Players, r.Seed, r.RoundID)
	}
	return tw.Flush()
}
