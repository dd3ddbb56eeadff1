package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
	"github.com/rl1809/inventory-ledger/internal/port"
)

const (
	DefaultPath              = "inventory.json"
	DefaultLowStockThreshold = 5

	mirrorTimeout = 5 * time.Second
)

// InventoryService owns one session's ledger and activity log.
// Every operation holds the service lock, so calls are applied one at a time.
type InventoryService struct {
	mu        sync.Mutex
	files     port.StockFile
	stock     *domain.Stock
	activity  *domain.ActivityLog
	mirror    port.StockMirror
	logger    *slog.Logger
	now       func() time.Time
	sessionID uuid.UUID
}

func NewInventoryService(files port.StockFile, opts ...Option) *InventoryService {
	s := &InventoryService{
		files:     files,
		stock:     domain.NewStock(),
		activity:  domain.NewActivityLog(),
		logger:    slog.Default(),
		now:       time.Now,
		sessionID: uuid.New(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Add increases item's stock by qty.
func (s *InventoryService) Add(item string, qty int, opts ...LogOption) error {
	if strings.TrimSpace(item) == "" {
		return fmt.Errorf("%w: item name cannot be empty", domain.ErrInvalidArgument)
	}
	if qty < 0 {
		return fmt.Errorf("%w: quantity to add cannot be negative", domain.ErrInvalidArgument)
	}

	s.mu.Lock()
	current := s.stock.Get(item)
	if qty > math.MaxInt-current {
		s.mu.Unlock()
		return fmt.Errorf("%w: adding %d to %s would overflow its quantity", domain.ErrInvalidArgument, qty, item)
	}
	s.stock.Set(item, current+qty)
	s.record(s.target(opts), "Added %d of %s", qty, item)
	s.mu.Unlock()

	if qty > 0 {
		s.mirrorAdd(item, qty)
	}
	return nil
}

// Remove takes up to qty of item out of stock. Removing an item that is not
// stocked does nothing and records nothing. The entry is deleted once it
// reaches zero and the log records the amount actually removed.
func (s *InventoryService) Remove(item string, qty int, opts ...LogOption) error {
	if qty < 0 {
		return fmt.Errorf("%w: quantity to remove cannot be negative", domain.ErrInvalidArgument)
	}

	s.mu.Lock()
	current := s.stock.Get(item)
	if current == 0 {
		s.mu.Unlock()
		return nil
	}

	removed := min(qty, current)
	s.stock.Set(item, current-removed)
	s.record(s.target(opts), "Removed %d of %s", removed, item)
	s.mu.Unlock()

	s.mirrorRemove(item, qty)
	return nil
}

// Quantity returns the stocked amount of item, 0 when unknown.
func (s *InventoryService) Quantity(item string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stock.Get(item)
}

// LowStock lists items whose quantity is strictly below threshold, in ledger order.
func (s *InventoryService) LowStock(threshold int) ([]string, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: threshold must be a non-negative integer", domain.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	low := make([]string, 0)
	for _, item := range s.stock.Items() {
		if item.Quantity < threshold {
			low = append(low, item.Name)
		}
	}
	return low, nil
}

// Load replaces the ledger with the file at path.
//
// A missing file resets the ledger to empty and a file that is not valid JSON
// leaves it untouched; both are only recorded in the activity log.
func (s *InventoryService) Load(path string) error {
	if path == "" {
		path = DefaultPath
	}

	stock, err := s.files.ReadStock(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	var malformed *domain.MalformedError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.stock = domain.NewStock()
		s.record(s.activity, "Inventory file not found; initialized empty")
		s.mirrorReplace(s.stock.Clone())
		return nil
	case errors.As(err, &malformed):
		s.logger.Warn("inventory file is malformed, keeping current stock",
			"path", path,
			"error", malformed.Err,
		)
		s.record(s.activity, "Failed to parse %s: %v", path, malformed.Err)
		return nil
	case err != nil:
		return err
	}

	s.stock = stock
	s.record(s.activity, "Loaded inventory from %s", path)
	s.mirrorReplace(stock.Clone())
	return nil
}

// Save writes the ledger to path as pretty-printed JSON.
func (s *InventoryService) Save(path string) error {
	if path == "" {
		path = DefaultPath
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.files.WriteStock(path, s.stock); err != nil {
		return err
	}

	s.record(s.activity, "Saved inventory to %s", path)
	return nil
}

// Export copies the ledger to repo.
func (s *InventoryService) Export(ctx context.Context, repo port.StockRepository) error {
	s.mu.Lock()
	snapshot := s.stock.Clone()
	s.mu.Unlock()

	if err := repo.SaveStock(ctx, snapshot); err != nil {
		return fmt.Errorf("%w: export to %s: %w", domain.ErrIOFailure, repo.Name(), err)
	}

	s.mu.Lock()
	s.record(s.activity, "Exported inventory to %s", repo.Name())
	s.mu.Unlock()

	s.logger.Info("inventory exported", "target", repo.Name(), "items", snapshot.Len())
	return nil
}

// Import replaces the ledger with the contents of repo. On error the ledger is unchanged.
func (s *InventoryService) Import(ctx context.Context, repo port.StockRepository) error {
	stock, err := repo.LoadStock(ctx)
	if err != nil {
		return fmt.Errorf("%w: import from %s: %w", domain.ErrIOFailure, repo.Name(), err)
	}

	s.mu.Lock()
	s.stock = stock
	s.record(s.activity, "Imported inventory from %s", repo.Name())
	s.mirrorReplace(stock.Clone())
	s.mu.Unlock()

	s.logger.Info("inventory imported", "source", repo.Name(), "items", stock.Len())
	return nil
}

// Archive appends the session's activity log to archive.
func (s *InventoryService) Archive(ctx context.Context, archive port.ActivityArchive) error {
	s.mu.Lock()
	entries := s.activity.Entries()
	s.mu.Unlock()

	if err := archive.AppendActivity(ctx, s.sessionID.String(), entries); err != nil {
		return fmt.Errorf("%w: archive activity: %w", domain.ErrIOFailure, err)
	}
	return nil
}

// Stock returns a copy of the current ledger.
func (s *InventoryService) Stock() *domain.Stock {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stock.Clone()
}

// Log returns a copy of the service-owned activity log.
func (s *InventoryService) Log() *domain.ActivityLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.activity.Clone()
}

func (s *InventoryService) SessionID() uuid.UUID {
	return s.sessionID
}

func (s *InventoryService) target(opts []LogOption) *domain.ActivityLog {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.target == nil {
		return s.activity
	}
	return o.target
}

func (s *InventoryService) record(l *domain.ActivityLog, format string, args ...any) {
	l.Append(domain.Entry{
		At:      s.now(),
		Message: fmt.Sprintf(format, args...),
	})
}

func (s *InventoryService) mirrorAdd(item string, qty int) {
	if s.mirror == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	if err := s.mirror.IncrementStock(ctx, item, qty); err != nil {
		s.logger.Warn("mirror increment failed", "item", item, "quantity", qty, "error", err)
	}
}

func (s *InventoryService) mirrorRemove(item string, qty int) {
	if s.mirror == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	if _, err := s.mirror.RemoveStock(ctx, item, qty); err != nil {
		s.logger.Warn("mirror removal failed", "item", item, "quantity", qty, "error", err)
	}
}

// mirrorReplace overwrites the mirror with stock after the ledger was replaced
// wholesale. Callers hold s.mu so later add/remove mirroring applies on top.
func (s *InventoryService) mirrorReplace(stock *domain.Stock) {
	if s.mirror == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	if err := s.mirror.ReplaceStock(ctx, stock); err != nil {
		s.logger.Warn("mirror resync failed", "items", stock.Len(), "error", err)
	}
}
