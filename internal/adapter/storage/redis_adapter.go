package storage

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
)

const (
	DefaultRedisKey = "inventory:stock"
	orderKeySuffix  = ":order"
)

// KEYS[1] quantities hash, KEYS[2] insertion order list
var incrementStockScript = redis.NewScript(`
local hash = KEYS[1]
local order = KEYS[2]
local item = ARGV[1]
local quantity = tonumber(ARGV[2])

if redis.call('HEXISTS', hash, item) == 0 then
	redis.call('RPUSH', order, item)
end
return redis.call('HINCRBY', hash, item, quantity)
`)

var removeStockScript = redis.NewScript(`
local hash = KEYS[1]
local order = KEYS[2]
local item = ARGV[1]
local quantity = tonumber(ARGV[2])

local current = redis.call('HGET', hash, item)
if not current then
	return 0
end

current = tonumber(current)
if current <= 0 then
	return 0
end

local removed = math.min(quantity, current)
if current - removed > 0 then
	redis.call('HINCRBY', hash, item, -removed)
else
	redis.call('HDEL', hash, item)
	redis.call('LREM', order, 0, item)
end
return removed
`)

// RedisAdapter stores the ledger in a hash plus a list that keeps item order.
type RedisAdapter struct {
	client *redis.Client
	key    string
}

func NewRedisAdapter(client *redis.Client, key string) *RedisAdapter {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisAdapter{client: client, key: key}
}

func (r *RedisAdapter) Name() string {
	return "redis:" + r.key
}

func (r *RedisAdapter) orderKey() string {
	return r.key + orderKeySuffix
}

func (r *RedisAdapter) IncrementStock(ctx context.Context, item string, quantity int) error {
	keys := []string{r.key, r.orderKey()}
	return incrementStockScript.Run(ctx, r.client, keys, item, quantity).Err()
}

func (r *RedisAdapter) RemoveStock(ctx context.Context, item string, quantity int) (int, error) {
	keys := []string{r.key, r.orderKey()}

	removed, err := removeStockScript.Run(ctx, r.client, keys, item, quantity).Int()
	if err != nil {
		return 0, err
	}

	return removed, nil
}

// ReplaceStock resyncs the mirror after the ledger was replaced wholesale.
func (r *RedisAdapter) ReplaceStock(ctx context.Context, stock *domain.Stock) error {
	return r.SaveStock(ctx, stock)
}

func (r *RedisAdapter) SaveStock(ctx context.Context, stock *domain.Stock) error {
	items := stock.Items()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key, r.orderKey())
		if len(items) == 0 {
			return nil
		}

		fields := make(map[string]interface{}, len(items))
		names := make([]interface{}, 0, len(items))
		for _, item := range items {
			fields[item.Name] = item.Quantity
			names = append(names, item.Name)
		}
		pipe.HSet(ctx, r.key, fields)
		pipe.RPush(ctx, r.orderKey(), names...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save stock: %w", err)
	}

	return nil
}

func (r *RedisAdapter) LoadStock(ctx context.Context) (*domain.Stock, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("load stock: %w", err)
	}
	order, err := r.client.LRange(ctx, r.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load stock order: %w", err)
	}

	stock := domain.NewStock()
	seen := make(map[string]bool, len(order))
	for _, name := range order {
		raw, ok := fields[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		if qty, err := strconv.Atoi(raw); err == nil {
			stock.Set(name, qty)
		}
	}

	// fields written without the order list go last, sorted
	var rest []string
	for name := range fields {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		if qty, err := strconv.Atoi(fields[name]); err == nil {
			stock.Set(name, qty)
		}
	}

	return stock, nil
}
