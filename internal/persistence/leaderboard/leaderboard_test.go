package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"pixelcooked.dev/internal/pkg/clock"
	redisclient "pixelcooked.dev/internal/redis"
	"pixelcooked.dev/internal/sim/kitchen"
)

type BoardTestSuite struct {
	suite.Suite
	mr    *miniredis.Miniredis
	clock *clock.Manual
	board *Board
	ctx   context.Context
}

func (s *BoardTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	client, err := redisclient.NewClient(s.mr.Addr(), nil)
	s.Require().NoError(err)
	s.clock = clock.NewManual(time.Date(2026, 5, 4, 18, 30, 0, 0, time.UTC))
	s.board, err = New(&Config{Client: client, Clock: s.clock})
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *BoardTestSuite) submit(id string, players, score int) {
	s.Require().NoError(s.board.Submit(s.ctx, kitchen.Result{
		RoundID: id, Players: players, Seed: 11, Score: score, Delivered: score * 3, Ticks: 20000, RoundMs: 300000,
	}))
	s.clock.Advance(time.Second)
}

func (s *BoardTestSuite) TestSubmitStoresResult() {
	s.submit("a", 2, 5)

	s.True(s.mr.Exists("pixelcooked:scores:2"))
	score, err := s.mr.ZScore("pixelcooked:scores:2", "a")
	s.Require().NoError(err)
	s.Equal(5.0, score)
	s.Equal("15", s.mr.HGet("pixelcooked:round:a", "delivered"))
	s.Equal("2026-05-04T18:30:00Z", s.mr.HGet("pixelcooked:round:a", "submitted_at"))
}

func (s *BoardTestSuite) TestTopOrdersByScore() {
	s.submit("low", 2, 1)
	s.submit("high", 2, 9)
	s.submit("mid", 2, 4)
	s.submit("other", 3, 50)

	top, err := s.board.Top(s.ctx, 2, 2)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal("high", top[0].RoundID)
	s.Equal(1, top[0].Rank)
	s.Equal(9, top[0].Score)
	s.Equal(27, top[0].Delivered)
	s.Equal(int64(11), top[0].Seed)
	s.Equal(uint64(20000), top[0].Ticks)
	s.Equal(300000, top[0].RoundMs)
	s.Equal(time.Date(2026, 5, 4, 18, 30, 1, 0, time.UTC), top[0].SubmittedAt)
	s.Equal("mid", top[1].RoundID)
	s.Equal(2, top[1].Rank)

	top, err = s.board.Top(s.ctx, 4, 5)
	s.Require().NoError(err)
	s.Empty(top)
}

func (s *BoardTestSuite) TestResubmitOverwrites() {
	s.submit("a", 1, 3)
	s.submit("a", 1, 7)
	top, err := s.board.Top(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal(7, top[0].Score)
}

func (s *BoardTestSuite) TestRank() {
	s.submit("a", 2, 2)
	s.submit("b", 2, 8)
	s.submit("c", 2, 5)

	r, err := s.board.Rank(s.ctx, 2, "c")
	s.Require().NoError(err)
	s.Equal(2, r)

	_, err = s.board.Rank(s.ctx, 2, "missing")
	s.ErrorIs(err, ErrNotFound)
}

func (s *BoardTestSuite) TestRejectsBadInput() {
	s.Error(s.board.Submit(s.ctx, kitchen.Result{Players: 2}))
	s.Error(s.board.Submit(s.ctx, kitchen.Result{RoundID: "x", Players: 5}))
	_, err := s.board.Top(s.ctx, 0, 3)
	s.Error(err)
	_, err = s.board.Rank(s.ctx, 9, "x")
	s.Error(err)
}

func (s *BoardTestSuite) TestRedisDown() {
	s.mr.Close()
	err := s.board.Submit(s.ctx, kitchen.Result{RoundID: "x", Players: 2})
	s.Error(err)
}

func TestBoardTestSuite(t *testing.T) {
	suite.Run(t, new(BoardTestSuite))
}

func TestNew_Validates(t *testing.T) {
	_, err := New(&Config{})
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	c, err := redisclient.NewClient(mr.Addr(), nil)
	require.NoError(t, err)
	_, err = New(&Config{Client: c})
	assert.Error(t, err)

	b, err := New(&Config{Client: c, Clock: clock.New(), Prefix: "test"})
	require.NoError(t, err)
	assert.Equal(t, "test:scores:3", b.scoresKey(3))
}
