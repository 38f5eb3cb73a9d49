package ledger

import (
	"context"
	"sync"
)

// MemoryLedger keeps the last N entries in a ring.
type MemoryLedger struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

func NewMemory(capacity int) *MemoryLedger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryLedger{entries: make([]Entry, capacity)}
}

func (m *MemoryLedger) Close() error { return nil }

func (m *MemoryLedger) Record(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[m.next] = e
	m.next = (m.next + 1) % len(m.entries)
	if m.next == 0 {
		m.full = true
	}
	return nil
}

func (m *MemoryLedger) Recent(_ context.Context, limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	size := m.next
	if m.full {
		size = len(m.entries)
	}
	limit = clampLimit(limit, size)
	out := make([]Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (m.next - i + len(m.entries)) % len(m.entries)
		out = append(out, m.entries[idx])
	}
	return out, nil
}
