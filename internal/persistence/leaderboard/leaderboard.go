// Package leaderboard keeps finished round scores in Redis, one sorted set per player count.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"pixelcooked.dev/internal/pkg/clock"
	redisclient "pixelcooked.dev/internal/redis"
	"pixelcooked.dev/internal/sim/kitchen"
)

// Key patterns:
//
//	{prefix}:scores:{players}  sorted set, member round id, score round score
//	{prefix}:round:{round_id}  hash with the round result
const defaultPrefix = "pixelcooked"

var ErrNotFound = errors.New("leaderboard: round not found")

type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	Prefix string
}

func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.New("leaderboard: redis client is required")
	}
	if c.Clock == nil {
		return errors.New("leaderboard: clock is required")
	}
	return nil
}

type Board struct {
	client redisclient.Client
	clock  clock.Clock
	prefix string
}

// Entry is one leaderboard row. Rank is 1-based.
type Entry struct {
	Rank        int
	RoundID     string
	Players     int
	Seed        int64
	Score       int
	Delivered   int
	Ticks       uint64
	RoundMs     int
	SubmittedAt time.Time
}

func New(cfg *Config) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Board{client: cfg.Client, clock: cfg.Clock, prefix: prefix}, nil
}

func (b *Board) scoresKey(players int) string {
	return fmt.Sprintf("%s:scores:%d", b.prefix, players)
}

func (b *Board) roundKey(roundID string) string {
	return b.prefix + ":round:" + roundID
}

func validPlayers(n int) error {
	if n < 1 || n > kitchen.MaxPlayers {
		return fmt.Errorf("leaderboard: players %d out of range 1..%d", n, kitchen.MaxPlayers)
	}
	return nil
}

// Submit records a finished round. Submitting the same round again overwrites it.
func (b *Board) Submit(ctx context.Context, res kitchen.Result) error {
	if res.RoundID == "" {
		return errors.New("leaderboard: round id is required")
	}
	if err := validPlayers(res.Players); err != nil {
		return err
	}
	now := b.clock.Now().UTC()
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, b.scoresKey(res.Players), redis.Z{Score: float64(res.Score), Member: res.RoundID})
		pipe.HSet(ctx, b.roundKey(res.RoundID),
			"players", res.Players,
			"seed", res.Seed,
			"score", res.Score,
			"delivered", res.Delivered,
			"ticks", res.Ticks,
			"round_ms", res.RoundMs,
			"submitted_at", now.Format(time.RFC3339Nano),
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("leaderboard: submit %s: %w", res.RoundID, err)
	}
	return nil
}

// Top returns up to n best rounds for the given player count, best first.
func (b *Board) Top(ctx context.Context, players, n int) ([]Entry, error) {
	if err := validPlayers(players); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}
	zs, err := b.client.ZRevRangeWithScores(ctx, b.scoresKey(players), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard: top: %w", err)
	}
	if len(zs) == 0 {
		return nil, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(zs))
	_, err = b.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, z := range zs {
			cmds[i] = pipe.HGetAll(ctx, b.roundKey(z.Member.(string)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("leaderboard: top details: %w", err)
	}

	out := make([]Entry, 0, len(zs))
	for i, z := range zs {
		e := Entry{
			Rank:    i + 1,
			RoundID: z.Member.(string),
			Players: players,
			Score:   int(z.Score),
		}
		fillEntry(&e, cmds[i].Val())
		out = append(out, e)
	}
	return out, nil
}

// Rank returns the 1-based position of roundID among rounds with the same player count.
func (b *Board) Rank(ctx context.Context, players int, roundID string) (int, error) {
	if err := validPlayers(players); err != nil {
		return 0, err
	}
	r, err := b.client.ZRevRank(ctx, b.scoresKey(players), roundID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("leaderboard: rank %s: %w", roundID, err)
	}
	return int(r) + 1, nil
}

func fillEntry(e *Entry, h map[string]string) {
	e.Seed, _ = strconv.ParseInt(h["seed"], 10, 64)
	e.Delivered, _ = strconv.Atoi(h["delivered"])
	e.Ticks, _ = strconv.ParseUint(h["ticks"], 10, 64)
	e.RoundMs, _ = strconv.Atoi(h["round_ms"])
	e.SubmittedAt, _ = time.Parse(time.RFC3339Nano, h["submitted_at"])
}
