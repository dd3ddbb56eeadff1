package domain

import (
	"testing"
	"time"
)

func TestStock_SetKeepsInsertionOrder(t *testing.T) {
	s := NewStock()
	s.Set("apple", 10)
	s.Set("banana", 2)
	s.Set("apple", 7)

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "apple" || items[0].Quantity != 7 {
		t.Errorf("expected apple=7 first, got %s=%d", items[0].Name, items[0].Quantity)
	}
	if items[1].Name != "banana" || items[1].Quantity != 2 {
		t.Errorf("expected banana=2 second, got %s=%d", items[1].Name, items[1].Quantity)
	}
}

func TestStock_SetZeroDeletes(t *testing.T) {
	s := NewStock()
	s.Set("apple", 3)
	s.Set("apple", 0)

	if s.Has("apple") {
		t.Error("expected apple to be removed")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty stock, got %d", s.Len())
	}
	if got := s.Get("apple"); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestStock_DeleteMissingIsNoop(t *testing.T) {
	s := NewStock()
	s.Set("apple", 1)
	s.Delete("pear")

	if s.Len() != 1 {
		t.Errorf("expected 1 item, got %d", s.Len())
	}
}

func TestStock_CloneIsIndependent(t *testing.T) {
	s := NewStock()
	s.Set("apple", 1)

	c := s.Clone()
	c.Set("apple", 5)
	c.Set("kiwi", 2)

	if s.Get("apple") != 1 || s.Has("kiwi") {
		t.Error("clone mutation leaked into original")
	}
	if s.Equal(c) {
		t.Error("expected ledgers to differ")
	}
}

func TestStock_EqualIgnoresOrder(t *testing.T) {
	a := NewStock()
	a.Set("x", 1)
	a.Set("y", 2)

	b := NewStock()
	b.Set("y", 2)
	b.Set("x", 1)

	if !a.Equal(b) {
		t.Error("expected equal ledgers")
	}
	if a.Equal(nil) {
		t.Error("expected nil to differ")
	}
}

func TestEntry_String(t *testing.T) {
	e := Entry{
		At:      time.Date(2024, 3, 9, 14, 5, 7, 999, time.UTC),
		Message: "Added 10 of apple",
	}
	want := "2024-03-09T14:05:07: Added 10 of apple"
	if got := e.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestActivityLog_EntriesIsCopy(t *testing.T) {
	l := NewActivityLog()
	l.Append(Entry{Message: "one"})

	entries := l.Entries()
	entries[0].Message = "changed"

	if l.Entries()[0].Message != "one" {
		t.Error("log entry was mutated through returned slice")
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", l.Len())
	}
}

func TestActivityLog_CloneIsIndependent(t *testing.T) {
	l := NewActivityLog()
	l.Append(Entry{Message: "one"})

	clone := l.Clone()
	clone.Append(Entry{Message: "two"})

	if l.Len() != 1 {
		t.Errorf("expected original to keep 1 entry, got %d", l.Len())
	}
	if clone.Len() != 2 {
		t.Errorf("expected clone to have 2 entries, got %d", clone.Len())
	}
}
