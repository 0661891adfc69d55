package interfaces

import (
	"context"
)

// Asset interfaces are the value-transfer substrate. Every method joins the
// caller's transaction, so a failed transfer aborts the whole operation.
// Movement out of escrow is expressed as a transfer from the configured
// escrow address; identity is always explicit because there is no ambient
// caller off-chain.

// NativeBank moves native currency between addresses
type NativeBank interface {
	// Transfer moves amount from one address to another; fails on insufficient balance
	Transfer(ctx context.Context, from, to string, amount int64) error

	// BalanceOf returns the address's native balance
	BalanceOf(ctx context.Context, addr string) (int64, error)

	// Mint credits an address out of thin air; dev and test funding only
	Mint(ctx context.Context, addr string, amount int64) error
}

// TokenClient moves fungible-token balances
type TokenClient interface {
	// TransferFrom moves amount of token between addresses; fails on insufficient balance
	TransferFrom(ctx context.Context, token, from, to string, amount int64) error

	// BalanceOf returns the address's balance of the token
	BalanceOf(ctx context.Context, token, addr string) (int64, error)

	// Mint credits an address; dev and test funding only
	Mint(ctx context.Context, token, addr string, amount int64) error
}

// NFTClient moves non-fungible items
type NFTClient interface {
	// OwnerOf returns the current owner of the item
	OwnerOf(ctx context.Context, collection string, itemID int64) (string, error)

	// TransferFrom moves the item between addresses; fails unless from owns it
	TransferFrom(ctx context.Context, collection, from, to string, itemID int64) error

	// Mint creates an item owned by addr; dev and test funding only
	Mint(ctx context.Context, collection string, itemID int64, addr string) error
}
