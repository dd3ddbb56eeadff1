package port

import (
	"context"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
)

type StockMirror interface {
	// IncrementStock adds quantity to the mirrored counter
	IncrementStock(ctx context.Context, item string, quantity int) error

	// RemoveStock takes at most quantity away, deleting the counter at zero; returns the amount removed
	RemoveStock(ctx context.Context, item string, quantity int) (int, error)

	// ReplaceStock overwrites every mirrored counter with stock
	ReplaceStock(ctx context.Context, stock *domain.Stock) error
}
