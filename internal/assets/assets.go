// Package assets defines the fungible-asset collaborator consumed by the
// pool ledger and an in-memory implementation of it. The pool ledger never
// mints or burns underlying assets; it only moves value into and out of a
// custody account through this interface.
package assets

import (
	"context"
	"errors"
	"math/big"
)

var (
	// ErrUnknownAsset is returned by a Resolver for an unregistered identifier.
	ErrUnknownAsset = errors.New("unknown asset")

	// ErrInsufficientFunds is returned when a move exceeds the owner's balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientAllowance is returned when a third-party move exceeds the
	// owner's approval for the destination account.
	ErrInsufficientAllowance = errors.New("insufficient allowance")
)

// Asset is one fungible-asset ledger. MoveFrom pulls value from an owner
// into a holding account; MoveTo pays out of the asset's configured custody
// account. A failed move is a hard abort for the calling operation.
type Asset interface {
	MoveFrom(ctx context.Context, owner, to string, amount *big.Int) error
	MoveTo(ctx context.Context, to string, amount *big.Int) error
	BalanceOf(ctx context.Context, owner string) (*big.Int, error)
	AllowanceOf(ctx context.Context, owner, spender string) (*big.Int, error)
}

// Resolver maps an asset identifier to its ledger.
type Resolver interface {
	Asset(id string) (Asset, error)
}
