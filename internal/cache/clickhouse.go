package cache

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/aman-zulfiqar/amm-pool-ledger/internal/amm"
)

// ClickHouseStore archives pool events into the pool_events table:
//
//	CREATE TABLE pool_events (
//	    kind      LowCardinality(String),
//	    timestamp DateTime64(3),
//	    pair      String,
//	    asset_x   String,
//	    asset_y   String,
//	    account   String,
//	    amount_x  String,
//	    amount_y  String,
//	    shares    String
//	) ENGINE = MergeTree ORDER BY (pair, timestamp)
type ClickHouseStore struct {
	conn driver.Conn
}

// ClickHouseConfig holds connection settings for the archive store.
type ClickHouseConfig struct {
	Addr     string
	Database string
	Username string
	Password string
}

// NewClickHouseStore connects to ClickHouse and verifies the connection.
func NewClickHouseStore(ctx context.Context, cfg ClickHouseConfig) (*ClickHouseStore, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to clickhouse: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}
	return &ClickHouseStore{conn: conn}, nil
}

// InsertEvent archives a single pool event.
func (c *ClickHouseStore) InsertEvent(ctx context.Context, ev *amm.PoolEvent) error {
	query := `
		INSERT INTO pool_events (
			kind, timestamp, pair, asset_x, asset_y,
			account, amount_x, amount_y, shares
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	err := c.conn.Exec(ctx, query,
		string(ev.Kind),
		ev.Timestamp,
		ev.Pair,
		ev.AssetX,
		ev.AssetY,
		ev.Account,
		ev.AmountX,
		ev.AmountY,
		ev.Shares,
	)
	if err != nil {
		return fmt.Errorf("insert pool event: %w", err)
	}
	return nil
}

// Ping checks the ClickHouse connection.
func (c *ClickHouseStore) Ping(ctx context.Context) error {
	return c.conn.Ping(ctx)
}

// Close closes the ClickHouse connection.
func (c *ClickHouseStore) Close() error {
	return c.conn.Close()
}
