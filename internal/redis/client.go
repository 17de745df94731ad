// Package redis wraps the go-redis client so callers depend on an interface.
package redis

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the leaderboard uses, widened to the universal client so
// single-node and cluster deployments both fit.
type Client interface {
	redis.UniversalClient
}

type Options struct {
	DB          int
	Password    string
	DialTimeout time.Duration
	MaxRetries  int
}

// NewClient creates a client for one Redis instance. No connection is made until first use.
func NewClient(addr string, opts *Options) (Client, error) {
	if addr == "" {
		return nil, errors.New("redis: address is required")
	}
	if opts == nil {
		opts = &Options{}
	}
	return redis.NewClient(&redis.Options{
		Addr:        addr,
		DB:          opts.DB,
		Password:    opts.Password,
		DialTimeout: opts.DialTimeout,
		MaxRetries:  opts.MaxRetries,
	}), nil
}

// NewFromURL parses a redis:// URL such as redis://localhost:6379/2.
func NewFromURL(url string) (Client, error) {
	o, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(o), nil
}
