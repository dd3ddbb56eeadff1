package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
	"github.com/rl1809/inventory-ledger/internal/port"
)

// Option configures an InventoryService.
type Option func(*InventoryService)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *InventoryService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for activity timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *InventoryService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMirror forwards every successful add/remove to a secondary counter store.
func WithMirror(mirror port.StockMirror) Option {
	return func(s *InventoryService) {
		s.mirror = mirror
	}
}

// WithSessionID sets the id used when archiving activity. Defaults to a random UUID.
func WithSessionID(id uuid.UUID) Option {
	return func(s *InventoryService) {
		s.sessionID = id
	}
}

// LogOption selects where a single call records its activity.
type LogOption func(*callOptions)

type callOptions struct {
	target *domain.ActivityLog
}

// LogTo records the call's activity in l instead of the service-owned log.
func LogTo(l *domain.ActivityLog) LogOption {
	return func(o *callOptions) {
		o.target = l
	}
}
