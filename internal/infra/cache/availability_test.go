package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Warn(format string, v ...interface{}) {}

type payload struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

func newTestCache(t *testing.T) (*AvailabilityCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewAvailabilityCache(client, time.Minute, nopLogger{}), srv
}

func TestAvailabilityCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	value := payload{Date: "2026-09-15", Slots: []string{"10:00", "10:30"}}
	cache.Set(ctx, "2026-09-15", []int64{1, 2}, nil, value)

	var got payload
	require.True(t, cache.Get(ctx, "2026-09-15", []int64{1, 2}, nil, &got))
	assert.Equal(t, value, got)
}

func TestAvailabilityCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t)

	var got payload
	assert.False(t, cache.Get(context.Background(), "2026-09-15", []int64{1}, nil, &got))
}

func TestAvailabilityCache_KeyNormalization(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	// Порядок меню не меняет ключ
	cache.Set(ctx, "2026-09-15", []int64{2, 1}, nil, payload{Date: "2026-09-15"})

	var got payload
	assert.True(t, cache.Get(ctx, "2026-09-15", []int64{1, 2}, nil, &got))
}

func TestAvailabilityCache_StaffSpecificKeys(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	staffID := int64(1)

	cache.Set(ctx, "2026-09-15", []int64{1}, &staffID, payload{Date: "staff"})
	cache.Set(ctx, "2026-09-15", []int64{1}, nil, payload{Date: "any"})

	var got payload
	require.True(t, cache.Get(ctx, "2026-09-15", []int64{1}, &staffID, &got))
	assert.Equal(t, "staff", got.Date)

	require.True(t, cache.Get(ctx, "2026-09-15", []int64{1}, nil, &got))
	assert.Equal(t, "any", got.Date)
}

func TestAvailabilityCache_InvalidateDate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()
	staffID := int64(1)

	cache.Set(ctx, "2026-09-15", []int64{1}, nil, payload{})
	cache.Set(ctx, "2026-09-15", []int64{1, 2}, &staffID, payload{})
	cache.Set(ctx, "2026-09-16", []int64{1}, nil, payload{})

	cache.InvalidateDate(ctx, "2026-09-15")

	var got payload
	assert.False(t, cache.Get(ctx, "2026-09-15", []int64{1}, nil, &got))
	assert.False(t, cache.Get(ctx, "2026-09-15", []int64{1, 2}, &staffID, &got))

	// Другая дата не затронута
	assert.True(t, cache.Get(ctx, "2026-09-16", []int64{1}, nil, &got))
}

func TestAvailabilityCache_TTL(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "2026-09-15", []int64{1}, nil, payload{})

	srv.FastForward(2 * time.Minute)

	var got payload
	assert.False(t, cache.Get(ctx, "2026-09-15", []int64{1}, nil, &got))
}
