package port

import (
	"context"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
)

type StockRepository interface {
	// LoadStock returns the full persisted ledger
	LoadStock(ctx context.Context) (*domain.Stock, error)

	// SaveStock replaces the persisted ledger with stock
	SaveStock(ctx context.Context, stock *domain.Stock) error

	// Name identifies the repository in activity entries
	Name() string
}
