package amm

import (
	"context"
	"time"
)

// EventKind discriminates pool notifications.
type EventKind string

const (
	EventLiquidityAdded   EventKind = "liquidity_added"
	EventLiquidityRemoved EventKind = "liquidity_removed"
	EventSwapped          EventKind = "swapped"
)

// PoolEvent is the notification emitted after every successful mutating
// call. Amounts are decimal strings so the payload survives JSON, Redis and
// ClickHouse round-trips without precision loss.
//
// Field mapping by kind:
//   - liquidity_added:   AssetX/AssetY are the pool pair, Account is the
//     share recipient, AmountX/AmountY the credited contributions, Shares
//     the minted share units.
//   - liquidity_removed: Account is the withdrawing provider, AmountX/
//     AmountY the returned amounts, Shares the burned share units.
//   - swapped:           AssetX is tokenIn, AssetY is tokenOut, Account is
//     the trader, AmountX the input amount, AmountY the output amount.
type PoolEvent struct {
	Kind      EventKind `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Pair      string    `json:"pair"`
	AssetX    string    `json:"asset_x"`
	AssetY    string    `json:"asset_y"`
	Account   string    `json:"account"`
	AmountX   string    `json:"amount_x"`
	AmountY   string    `json:"amount_y"`
	Shares    string    `json:"shares,omitempty"`
}

// EventSink receives ledger notifications. A sink failure never fails the
// operation that produced the event; the ledger logs and moves on so pool
// bookkeeping does not depend on downstream availability.
type EventSink interface {
	Publish(ctx context.Context, ev *PoolEvent) error
}
