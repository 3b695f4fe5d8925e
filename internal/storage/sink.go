package storage

import (
	"context"
	"math/big"

	"github.com/sirupsen/logrus"

	"github.com/aman-zulfiqar/amm-pool-ledger/internal/amm"
)

// CacheSink forwards ledger events to an EventCache: recent list, live
// Pub/Sub channel, and the per-pair execution price on swaps.
type CacheSink struct {
	Cache EventCache
}

func (s *CacheSink) Publish(ctx context.Context, ev *amm.PoolEvent) error {
	if err := s.Cache.AddRecentEvent(ctx, ev); err != nil {
		return err
	}
	if err := s.Cache.PublishEvent(ctx, ev); err != nil {
		return err
	}
	if ev.Kind == amm.EventSwapped {
		if price, ok := executionPrice(ev); ok {
			return s.Cache.UpdatePrice(ctx, ev.Pair, price)
		}
	}
	return nil
}

// StoreSink archives ledger events into an EventStore.
type StoreSink struct {
	Store EventStore
}

func (s *StoreSink) Publish(ctx context.Context, ev *amm.PoolEvent) error {
	return s.Store.InsertEvent(ctx, ev)
}

// LogSink writes ledger events to the structured log.
type LogSink struct {
	Logger *logrus.Logger
}

func (s *LogSink) Publish(ctx context.Context, ev *amm.PoolEvent) error {
	s.Logger.WithFields(logrus.Fields{
		"kind":     ev.Kind,
		"pair":     ev.Pair,
		"account":  ev.Account,
		"amount_x": ev.AmountX,
		"amount_y": ev.AmountY,
		"shares":   ev.Shares,
	}).Info("pool event")
	return nil
}

// Fanout delivers each event to every sink. The first error is returned
// after all sinks have been attempted.
type Fanout []amm.EventSink

func (f Fanout) Publish(ctx context.Context, ev *amm.PoolEvent) error {
	var first error
	for _, sink := range f {
		if err := sink.Publish(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// executionPrice derives amountOut/amountIn from a swap event's decimal
// string amounts. Display value only; the ledger never prices from it.
func executionPrice(ev *amm.PoolEvent) (float64, bool) {
	in, okIn := new(big.Float).SetString(ev.AmountX)
	out, okOut := new(big.Float).SetString(ev.AmountY)
	if !okIn || !okOut || in.Sign() == 0 {
		return 0, false
	}
	price, _ := new(big.Float).Quo(out, in).Float64()
	return price, true
}
