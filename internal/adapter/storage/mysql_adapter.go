package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS stock (
		item       VARCHAR(255) NOT NULL PRIMARY KEY,
		quantity   INT          NOT NULL,
		position   INT          NOT NULL,
		updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
	) DEFAULT CHARSET = utf8mb4 COLLATE = utf8mb4_bin`,
	`CREATE TABLE IF NOT EXISTS activity_log (
		id         CHAR(36)     NOT NULL PRIMARY KEY,
		session_id CHAR(36)     NOT NULL,
		seq        INT          NOT NULL,
		logged_at  DATETIME     NOT NULL,
		message    TEXT         NOT NULL,
		INDEX idx_activity_session (session_id, seq)
	) DEFAULT CHARSET = utf8mb4`,
}

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) Name() string {
	return "mysql:stock"
}

// EnsureSchema creates the stock and activity_log tables when missing.
func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (m *MySQLAdapter) SaveStock(ctx context.Context, stock *domain.Stock) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stock`); err != nil {
		return fmt.Errorf("clear stock: %w", err)
	}

	for i, item := range stock.Items() {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO stock (item, quantity, position, updated_at)
			VALUES (?, ?, ?, NOW())`,
			item.Name, item.Quantity, i,
		)
		if err != nil {
			return fmt.Errorf("insert stock %q: %w", item.Name, err)
		}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) LoadStock(ctx context.Context) (*domain.Stock, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT item, quantity FROM stock ORDER BY position, item`)
	if err != nil {
		return nil, fmt.Errorf("query stock: %w", err)
	}
	defer rows.Close()

	stock := domain.NewStock()
	for rows.Next() {
		var (
			name string
			qty  int
		)
		if err := rows.Scan(&name, &qty); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		stock.Set(name, qty)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock: %w", err)
	}

	return stock, nil
}

func (m *MySQLAdapter) AppendActivity(ctx context.Context, sessionID string, entries []domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var offset int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq) + 1, 0) FROM activity_log WHERE session_id = ?`,
		sessionID,
	).Scan(&offset)
	if err != nil {
		return fmt.Errorf("query activity seq: %w", err)
	}

	for i, e := range entries {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO activity_log (id, session_id, seq, logged_at, message)
			VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), sessionID, offset+i, e.At, e.Message,
		)
		if err != nil {
			return fmt.Errorf("insert activity: %w", err)
		}
	}

	return tx.Commit()
}

// ListActivity returns the archived entries of a session in order.
func (m *MySQLAdapter) ListActivity(ctx context.Context, sessionID string) ([]domain.Entry, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT logged_at, message FROM activity_log
		WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.At, &e.Message); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}

	return entries, nil
}
