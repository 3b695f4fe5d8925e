package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/aman-zulfiqar/amm-pool-ledger/internal/amm"
	"github.com/aman-zulfiqar/amm-pool-ledger/internal/constants"
)

// RedisCache keeps a bounded list of recent pool events, the last execution
// price per pair, and a live Pub/Sub feed of events.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, addr string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

// AddRecentEvent pushes the event onto the recent list and trims it to
// constants.MaxRecentEvents.
func (r *RedisCache) AddRecentEvent(ctx context.Context, ev *amm.PoolEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, constants.RedisKeyRecentEvents, b)
	pipe.LTrim(ctx, constants.RedisKeyRecentEvents, 0, constants.MaxRecentEvents-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("add recent event: %w", err)
	}
	return nil
}

// UpdatePrice stores the last execution price for a pair.
func (r *RedisCache) UpdatePrice(ctx context.Context, pair string, price float64) error {
	key := constants.RedisKeyPricePrefix + pair
	if err := r.client.Set(ctx, key, price, 0).Err(); err != nil {
		return fmt.Errorf("update price: %w", err)
	}
	return nil
}

// GetRecentEvents returns up to limit of the most recent events, newest first.
func (r *RedisCache) GetRecentEvents(ctx context.Context, limit int64) ([]*amm.PoolEvent, error) {
	if limit <= 0 || limit > constants.MaxRecentEvents {
		limit = constants.MaxRecentEvents
	}

	raw, err := r.client.LRange(ctx, constants.RedisKeyRecentEvents, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("get recent events: %w", err)
	}

	events := make([]*amm.PoolEvent, 0, len(raw))
	for _, item := range raw {
		var ev amm.PoolEvent
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			continue
		}
		events = append(events, &ev)
	}
	return events, nil
}

// GetPrice returns the last execution price for a pair, or 0 when unknown.
func (r *RedisCache) GetPrice(ctx context.Context, pair string) (float64, error) {
	val, err := r.client.Get(ctx, constants.RedisKeyPricePrefix+pair).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get price: %w", err)
	}

	price, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price: %w", err)
	}
	return price, nil
}

// PublishEvent publishes the event to the live channel.
func (r *RedisCache) PublishEvent(ctx context.Context, ev *amm.PoolEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := r.client.Publish(ctx, constants.PubSubChannelEvents, b).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// SubscribeEvents subscribes to the live channel. The returned channel is
// closed when ctx is cancelled or the subscription drops.
func (r *RedisCache) SubscribeEvents(ctx context.Context) (<-chan *amm.PoolEvent, error) {
	pubsub := r.client.Subscribe(ctx, constants.PubSubChannelEvents)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe events: %w", err)
	}

	out := make(chan *amm.PoolEvent)
	go func() {
		defer close(out)
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev amm.PoolEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case out <- &ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Ping checks the Redis connection.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
