package domain

// StockItem is a single ledger row.
type StockItem struct {
	Name     string
	Quantity int
}

// Stock maps item names to positive quantities, keeping insertion order.
// A zero quantity is never stored: absence means no stock.
type Stock struct {
	quantities map[string]int
	order      []string
}

func NewStock() *Stock {
	return &Stock{quantities: make(map[string]int)}
}

// Get returns the quantity of item, 0 when absent.
func (s *Stock) Get(item string) int {
	return s.quantities[item]
}

func (s *Stock) Has(item string) bool {
	_, ok := s.quantities[item]
	return ok
}

// Set stores quantity for item. A quantity <= 0 deletes the entry.
// Updating an existing item keeps its position.
func (s *Stock) Set(item string, quantity int) {
	if quantity <= 0 {
		s.Delete(item)
		return
	}
	if _, ok := s.quantities[item]; !ok {
		s.order = append(s.order, item)
	}
	s.quantities[item] = quantity
}

func (s *Stock) Delete(item string) {
	if _, ok := s.quantities[item]; !ok {
		return
	}
	delete(s.quantities, item)
	for i, name := range s.order {
		if name == item {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Stock) Len() int {
	return len(s.order)
}

// Items returns the rows in insertion order.
func (s *Stock) Items() []StockItem {
	items := make([]StockItem, 0, len(s.order))
	for _, name := range s.order {
		items = append(items, StockItem{Name: name, Quantity: s.quantities[name]})
	}
	return items
}

func (s *Stock) Clone() *Stock {
	c := &Stock{
		quantities: make(map[string]int, len(s.quantities)),
		order:      make([]string, len(s.order)),
	}
	copy(c.order, s.order)
	for k, v := range s.quantities {
		c.quantities[k] = v
	}
	return c
}

// Equal reports whether both ledgers hold the same item/quantity pairs,
// regardless of order.
func (s *Stock) Equal(other *Stock) bool {
	if other == nil || len(s.quantities) != len(other.quantities) {
		return false
	}
	for k, v := range s.quantities {
		if other.quantities[k] != v {
			return false
		}
	}
	return true
}
