package storage

import (
	"context"
	"io"

	"github.com/aman-zulfiqar/amm-pool-ledger/internal/amm"
)

// EventCache defines the interface for caching pool event data
type EventCache interface {
	// AddRecentEvent adds a pool event to the recent events list
	AddRecentEvent(ctx context.Context, ev *amm.PoolEvent) error

	// UpdatePrice updates the last execution price for a pair
	UpdatePrice(ctx context.Context, pair string, price float64) error

	// GetRecentEvents retrieves the most recent pool events
	GetRecentEvents(ctx context.Context, limit int64) ([]*amm.PoolEvent, error)

	// GetPrice retrieves the last execution price for a pair
	GetPrice(ctx context.Context, pair string) (float64, error)

	// PublishEvent publishes a pool event to the Pub/Sub channel
	PublishEvent(ctx context.Context, ev *amm.PoolEvent) error

	// SubscribeEvents subscribes to real-time pool events
	SubscribeEvents(ctx context.Context) (<-chan *amm.PoolEvent, error)

	// Ping checks if the cache is reachable
	Ping(ctx context.Context) error

	// Close closes the cache connection
	io.Closer
}

// EventStore defines the interface for persistent pool event storage
type EventStore interface {
	// InsertEvent inserts a pool event into the store
	InsertEvent(ctx context.Context, ev *amm.PoolEvent) error

	// Ping checks if the store is reachable
	Ping(ctx context.Context) error

	// Close closes the store connection
	io.Closer
}
