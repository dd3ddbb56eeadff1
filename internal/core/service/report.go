package service

import (
	"fmt"
	"io"
	"strings"
)

const (
	inventoryHeader = "Items Report"
	logHeader       = "Activity Log"
	noItems         = "(no items)"
	noActivity      = "(no activity)"
)

// PrintInventory writes one "item -> qty" line per ledger entry.
func (s *InventoryService) PrintInventory(w io.Writer) error {
	s.mu.Lock()
	items := s.stock.Items()
	s.mu.Unlock()

	var b strings.Builder
	b.WriteString(inventoryHeader + "\n")
	if len(items) == 0 {
		b.WriteString(noItems + "\n")
	}
	for _, item := range items {
		fmt.Fprintf(&b, "%s -> %d\n", item.Name, item.Quantity)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("print inventory: %w", err)
	}
	return nil
}

// PrintLog writes the activity log in insertion order.
func (s *InventoryService) PrintLog(w io.Writer, opts ...LogOption) error {
	s.mu.Lock()
	lines := s.target(opts).Lines()
	s.mu.Unlock()

	var b strings.Builder
	b.WriteString(logHeader + "\n")
	if len(lines) == 0 {
		b.WriteString(noActivity + "\n")
	}
	for _, line := range lines {
		b.WriteString(line + "\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("print log: %w", err)
	}
	return nil
}
