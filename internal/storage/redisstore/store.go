// Package redisstore shares best scores and a leaderboard between SSH
// sessions through Redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/ballpop/internal/core"
)

// maxWatchRetries bounds optimistic retries when concurrent writers race
// on the same best score.
const maxWatchRetries = 8

// ErrContended is returned when a best score kept changing under every retry.
var ErrContended = errors.New("redisstore: best score update contended")

// Entry is one leaderboard row.
type Entry struct {
	Player string
	Score  int
}

// Store is a Redis-backed score store.
type Store struct {
	client *redis.Client
	cfg    Config
}

// New connects to Redis and verifies the connection.
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redisstore: invalid url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redisstore: cannot connect: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a store with an existing client (for testing).
func NewWithClient(client *redis.Client, cfg Config) *Store {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	if cfg.OpTimeout <= 0 {
		cfg.OpTimeout = DefaultConfig().OpTimeout
	}
	return &Store{client: client, cfg: cfg}
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// LoadBest returns the best score stored under name, or 0 when none exists.
func (s *Store) LoadBest(ctx context.Context, name string) (int, error) {
	v, err := s.client.Get(ctx, s.bestKey(name)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redisstore: cannot load best %q: %w", name, err)
	}
	return v, nil
}

// SaveBest stores value under name unless a higher value is already stored.
// Concurrent sessions may save at once, so the compare and set runs inside
// WATCH/MULTI and is retried when another writer gets in first.
func (s *Store) SaveBest(ctx context.Context, name string, value int) error {
	key := s.bestKey(name)

	update := func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Int()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil && cur >= value {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, 0)
			return nil
		})
		return err
	}

	for range maxWatchRetries {
		err := s.client.Watch(ctx, update, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("redisstore: cannot save best %q: %w", name, err)
		}
		return nil
	}
	return ErrContended
}

// RecordScore adds a finished round to the game leaderboard, keeping each
// player's best, and raises the game's shared best score.
func (s *Store) RecordScore(ctx context.Context, gameID, player string, score int) error {
	if score <= 0 {
		return nil
	}
	err := s.client.ZAddGT(ctx, s.leaderboardKey(gameID), redis.Z{
		Score:  float64(score),
		Member: player,
	}).Err()
	if err != nil {
		return fmt.Errorf("redisstore: cannot record score: %w", err)
	}
	return s.SaveBest(ctx, gameID, score)
}

// Leaderboard returns the top players for a game, best first.
func (s *Store) Leaderboard(ctx context.Context, gameID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	zs, err := s.client.ZRevRangeWithScores(ctx, s.leaderboardKey(gameID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: cannot read leaderboard: %w", err)
	}

	entries := make([]Entry, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		entries = append(entries, Entry{Player: member, Score: int(z.Score)})
	}
	return entries, nil
}

// BestScores returns a core.BestScoreStore bound to one name. Each call runs
// under the configured operation timeout.
func (s *Store) BestScores(name string) core.BestScoreStore {
	return bestScores{store: s, name: name}
}

type bestScores struct {
	store *Store
	name  string
}

func (b bestScores) LoadBestScore() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.store.cfg.OpTimeout)
	defer cancel()
	return b.store.LoadBest(ctx, b.name)
}

func (b bestScores) SaveBestScore(value int) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.store.cfg.OpTimeout)
	defer cancel()
	return b.store.SaveBest(ctx, b.name, value)
}

// PlayerRecorder records finished rounds for one player.
type PlayerRecorder struct {
	store  *Store
	player string
}

// Recorder returns a PlayerRecorder for the given player name.
func (s *Store) Recorder(player string) PlayerRecorder {
	return PlayerRecorder{store: s, player: player}
}

// RecordScore records a finished round under the bound player.
func (r PlayerRecorder) RecordScore(gameID string, score int) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.store.cfg.OpTimeout)
	defer cancel()
	return r.store.RecordScore(ctx, gameID, r.player, score)
}
