package port

import "github.com/rl1809/inventory-ledger/internal/core/domain"

type StockFile interface {
	// ReadStock parses the ledger stored at path; a missing file yields an fs.ErrNotExist error
	ReadStock(path string) (*domain.Stock, error)

	// WriteStock overwrites path with the serialized ledger
	WriteStock(path string, stock *domain.Stock) error
}
