package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
)

const filePerm = 0o644

// FileAdapter keeps the ledger in a UTF-8 JSON file.
type FileAdapter struct{}

func NewFileAdapter() *FileAdapter {
	return &FileAdapter{}
}

func (f *FileAdapter) ReadStock(path string) (*domain.Stock, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrIOFailure, path, err)
	}

	return DecodeStock(path, data)
}

func (f *FileAdapter) WriteStock(path string, stock *domain.Stock) error {
	data, err := EncodeStock(stock)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", domain.ErrIOFailure, path, err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrIOFailure, path, err)
	}
	return nil
}
