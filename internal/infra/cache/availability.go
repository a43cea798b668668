package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// AvailabilityCache кеш ответов расчёта доступности.
// Расчёт доступности советующий и отражает состояние на момент запроса,
// поэтому короткий TTL допустим; записи даты инвалидируются при создании
// визита на неё. Ошибки кеша не фатальны: при недоступности redis запрос
// просто считается заново.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// NewAvailabilityCache создает кеш поверх подключения к redis
func NewAvailabilityCache(client *redis.Client, ttl time.Duration, log Logger) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl, log: log}
}

// Get возвращает закешированный ответ или false, если записи нет
func (c *AvailabilityCache) Get(ctx context.Context, date string, menuIDs []int64, staffID *int64, dest interface{}) bool {
	data, err := c.client.Get(ctx, c.key(date, menuIDs, staffID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("AvailabilityCache: get failed: %v", err)
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Warn("AvailabilityCache: failed to unmarshal cached value: %v", err)
		return false
	}

	return true
}

// Set сохраняет ответ с TTL
func (c *AvailabilityCache) Set(ctx context.Context, date string, menuIDs []int64, staffID *int64, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("AvailabilityCache: failed to marshal value: %v", err)
		return
	}

	key := c.key(date, menuIDs, staffID)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("AvailabilityCache: set failed: %v", err)
	}
}

// InvalidateDate удаляет все записи даты. Вызывается после создания визита
// или изменения статуса: закешированные слоты этой даты устарели.
func (c *AvailabilityCache) InvalidateDate(ctx context.Context, date string) {
	pattern := fmt.Sprintf("availability:%s:*", date)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("AvailabilityCache: scan failed: %v", err)
		return
	}

	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("AvailabilityCache: delete failed: %v", err)
	}
}

func (c *AvailabilityCache) key(date string, menuIDs []int64, staffID *int64) string {
	ids := make([]string, len(menuIDs))
	sorted := append([]int64(nil), menuIDs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i, id := range sorted {
		ids[i] = strconv.FormatInt(id, 10)
	}

	staff := "any"
	if staffID != nil {
		staff = strconv.FormatInt(*staffID, 10)
	}

	return fmt.Sprintf("availability:%s:%s:%s", date, strings.Join(ids, ","), staff)
}
