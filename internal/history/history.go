// Package history appends every accepted lobby action to a Redis list so
// games can be replayed or audited outside the server.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/DoyleJ11/monopoly-lobby/internal/lobby"
)

const (
	DefaultKey    = "monopoly:actions"
	DefaultMaxLen = 10000
)

type Options struct {
	Addr   string
	Key    string
	MaxLen int64
}

type Publisher struct {
	rdb    *redis.Client
	key    string
	maxLen int64
}

func New(opts Options) *Publisher {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.MaxLen <= 0 {
		opts.MaxLen = DefaultMaxLen
	}
	return &Publisher{
		rdb:    redis.NewClient(&redis.Options{Addr: opts.Addr}),
		key:    opts.Key,
		maxLen: opts.MaxLen,
	}
}

// Ping checks the server is reachable.
func (p *Publisher) Ping(ctx context.Context) error {
	if err := p.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Publish pushes a onto the list and trims it to the newest maxLen entries.
func (p *Publisher) Publish(ctx context.Context, a lobby.Action) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode action: %w", err)
	}
	pipe := p.rdb.TxPipeline()
	pipe.RPush(ctx, p.key, payload)
	pipe.LTrim(ctx, p.key, -p.maxLen, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push action %s/%d: %w", a.LobbyID, a.Version, err)
	}
	return nil
}

func (p *Publisher) Close() error { return p.rdb.Close() }

// Nop discards actions. It is used when no Redis address is configured.
type Nop struct{}

func (Nop) Publish(context.Context, lobby.Action) error { return nil }
