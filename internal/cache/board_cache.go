// Package cache provides a Redis read-through cache in front of a BoardRepository.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/and161185/kanban/internal/model"
	"github.com/and161185/kanban/internal/repository"
)

// DefaultTTL bounds how long a cached board may be served.
const DefaultTTL = 5 * time.Minute

// Key returns the Redis key holding the JSON form of a board.
func Key(boardID string) string { return "kanban:board:" + boardID }

// BoardRepo decorates another repository. Writes go through to the inner
// repository first; Redis failures are logged and never fail a call.
type BoardRepo struct {
	inner repository.BoardRepository
	rdb   redis.Cmdable
	ttl   time.Duration
	log   *zap.Logger
}

var _ repository.BoardRepository = (*BoardRepo)(nil)

// New wraps inner with a cache on rdb.
func New(inner repository.BoardRepository, rdb redis.Cmdable, ttl time.Duration, log *zap.Logger) *BoardRepo {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BoardRepo{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

func (c *BoardRepo) Create(ctx context.Context, b *model.Board) error {
	if err := c.inner.Create(ctx, b); err != nil {
		return err
	}
	c.store(ctx, b)
	return nil
}

func (c *BoardRepo) Get(ctx context.Context, boardID string) (*model.Board, error) {
	raw, err := c.rdb.Get(ctx, Key(boardID)).Bytes()
	switch {
	case err == nil:
		var b model.Board
		if uerr := json.Unmarshal(raw, &b); uerr == nil {
			return b.Clone(), nil
		}
		c.log.Warn("cache: drop undecodable entry", zap.String("boardId", boardID))
		c.evict(ctx, boardID)
	case !errors.Is(err, redis.Nil):
		c.log.Warn("cache: get failed", zap.String("boardId", boardID), zap.Error(err))
	}

	b, err := c.inner.Get(ctx, boardID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, b)
	return b, nil
}

func (c *BoardRepo) Update(ctx context.Context, b *model.Board) error {
	if err := c.inner.Update(ctx, b); err != nil {
		// the stored value is unknown now
		c.evict(ctx, b.BoardID)
		return err
	}
	c.store(ctx, b)
	return nil
}

func (c *BoardRepo) Delete(ctx context.Context, boardID string) error {
	err := c.inner.Delete(ctx, boardID)
	c.evict(ctx, boardID)
	return err
}

func (c *BoardRepo) store(ctx context.Context, b *model.Board) {
	raw, err := json.Marshal(b)
	if err != nil {
		c.log.Warn("cache: encode board", zap.String("boardId", b.BoardID), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, Key(b.BoardID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache: set failed", zap.String("boardId", b.BoardID), zap.Error(err))
	}
}

func (c *BoardRepo) evict(ctx context.Context, boardID string) {
	if err := c.rdb.Del(ctx, Key(boardID)).Err(); err != nil {
		c.log.Warn("cache: del failed", zap.String("boardId", boardID), zap.Error(err))
	}
}
