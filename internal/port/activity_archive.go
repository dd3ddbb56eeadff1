package port

import (
	"context"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
)

type ActivityArchive interface {
	// AppendActivity stores entries under the given session
	AppendActivity(ctx context.Context, sessionID string, entries []domain.Entry) error
}
