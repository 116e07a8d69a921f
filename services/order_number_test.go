package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/repository"
)

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "SF-2026-000001", FormatOrderNumber("SF", 2026, 1))
	assert.Equal(t, "SF-2026-123456", FormatOrderNumber("SF", 2026, 123456))
	assert.Equal(t, "SF-2026-1234567", FormatOrderNumber("SF", 2026, 1234567), "wider sequences are not truncated")
}

func TestSequenceOrderNumbers_ResetsPerYear(t *testing.T) {
	env := newTestEnv(t)
	gen := NewSequenceOrderNumbers("SF")
	ctx := context.Background()

	next := func(at time.Time) string {
		var number string
		err := env.store.Transaction(ctx, func(tx *repository.Store) error {
			var err error
			number, err = gen.Next(ctx, tx, at)
			return err
		})
		require.NoError(t, err)
		return number
	}

	assert.Equal(t, "SF-2026-000001", next(fixedNow))
	assert.Equal(t, "SF-2026-000002", next(fixedNow))
	assert.Equal(t, "SF-2027-000001", next(fixedNow.AddDate(1, 0, 0)))
	assert.Equal(t, "SF-2026-000003", next(fixedNow))
}

func TestSequenceOrderNumbers_RollbackReleasesNumber(t *testing.T) {
	env := newTestEnv(t)
	gen := NewSequenceOrderNumbers("SF")
	ctx := context.Background()

	err := env.store.Transaction(ctx, func(tx *repository.Store) error {
		_, err := gen.Next(ctx, tx, fixedNow)
		require.NoError(t, err)
		return errs.NewValidationError("quantity", "forced rollback")
	})
	require.ErrorIs(t, err, errs.ErrValidation)

	err = env.store.Transaction(ctx, func(tx *repository.Store) error {
		number, err := gen.Next(ctx, tx, fixedNow)
		assert.Equal(t, "SF-2026-000001", number)
		return err
	})
	require.NoError(t, err)
}

// fakeCounter emulates INCR over an in-memory map
type fakeCounter struct {
	values map[string]int64
	keys   []string
	err    error
}

func (f *fakeCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.values[key]++
	return redis.NewIntResult(f.values[key], nil)
}

func TestRedisOrderNumbers(t *testing.T) {
	counter := &fakeCounter{values: map[string]int64{}}
	gen := NewRedisOrderNumbers(counter, "SF")
	ctx := context.Background()

	first, err := gen.Next(ctx, nil, fixedNow)
	require.NoError(t, err)
	second, err := gen.Next(ctx, nil, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "SF-2026-000001", first)
	assert.Equal(t, "SF-2026-000002", second)
	assert.Equal(t, []string{"order_seq:SF-2026", "order_seq:SF-2026"}, counter.keys)
}

func TestRedisOrderNumbers_Failure(t *testing.T) {
	counter := &fakeCounter{values: map[string]int64{}, err: errors.New("connection refused")}
	gen := NewRedisOrderNumbers(counter, "SF")

	_, err := gen.Next(context.Background(), nil, fixedNow)
	assert.ErrorIs(t, err, errs.ErrStorage)
}

func TestCreateOrder_WithRedisNumbers(t *testing.T) {
	env := newTestEnv(t)
	counter := &fakeCounter{values: map[string]int64{"order_seq:SF-2026": 41}}
	svc := env.orderService(NoopExtractor{}, NewRedisOrderNumbers(counter, "SF"))

	order, err := svc.CreateOrder(context.Background(), validIntake(), nil, "system")
	require.NoError(t, err)
	assert.Equal(t, "SF-2026-000042", order.OrderNumber)
}
