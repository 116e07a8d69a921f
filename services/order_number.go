package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/repository"
)

// OrderNumberGenerator allocates human readable order numbers of the form
// {prefix}-{year}-{sequence:06d}. tx is the transaction creating the order.
type OrderNumberGenerator interface {
	Next(ctx context.Context, tx *repository.Store, at time.Time) (string, error)
}

// FormatOrderNumber renders an order number
func FormatOrderNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, year, seq)
}

func sequenceScope(prefix string, at time.Time) string {
	return fmt.Sprintf("%s-%d", prefix, at.Year())
}

// SequenceOrderNumbers allocates from the order_sequences table inside the
// creating transaction, so a rolled back order releases its number
type SequenceOrderNumbers struct {
	Prefix string
}

func NewSequenceOrderNumbers(prefix string) *SequenceOrderNumbers {
	return &SequenceOrderNumbers{Prefix: prefix}
}

func (g *SequenceOrderNumbers) Next(ctx context.Context, tx *repository.Store, at time.Time) (string, error) {
	seq, err := tx.Sequences().Next(ctx, sequenceScope(g.Prefix, at))
	if err != nil {
		return "", err
	}
	return FormatOrderNumber(g.Prefix, at.Year(), seq), nil
}

// redisCounter is the subset of the redis client used for sequences
type redisCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// RedisOrderNumbers allocates with Redis INCR. Numbers are never reused, so
// a rolled back order leaves a gap.
type RedisOrderNumbers struct {
	client redisCounter
	prefix string
}

func NewRedisOrderNumbers(client redisCounter, prefix string) *RedisOrderNumbers {
	return &RedisOrderNumbers{client: client, prefix: prefix}
}

// NewRedisClient parses a redis:// URL and verifies the connection
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func (g *RedisOrderNumbers) Next(ctx context.Context, _ *repository.Store, at time.Time) (string, error) {
	key := "order_seq:" + sequenceScope(g.prefix, at)
	seq, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return "", errs.NewStorageError("allocate order number", err)
	}
	return FormatOrderNumber(g.prefix, at.Year(), seq), nil
}
