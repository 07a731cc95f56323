package cache

import (
    "context"
    "sync"
    "time"

    "quotescore/internal/quote"
)

// entry stores one scored batch with its expiry deadline.
type entry struct {
    expiresAt time.Time
    records   []quote.ScoredQuote
}

// Memory is an in-process TTL cache keyed by the symbol-set string.
// Entries are immutable once stored; Put replaces wholesale. Expired
// entries read as absent and are dropped opportunistically on read; key
// growth is otherwise unbounded, which is fine for low symbol cardinality.
type Memory struct {
    ttl time.Duration

    mu    sync.RWMutex
    items map[string]entry

    now func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
    return &Memory{
        ttl:   ttl,
        items: make(map[string]entry),
        now:   time.Now,
    }
}

func (m *Memory) Get(_ context.Context, key string) ([]quote.ScoredQuote, bool) {
    m.mu.RLock()
    e, ok := m.items[key]
    m.mu.RUnlock()
    if !ok {
        return nil, false
    }
    if !m.now().Before(e.expiresAt) {
        m.mu.Lock()
        // re-check under the write lock; a fresh Put may have raced in
        if cur, ok := m.items[key]; ok && !m.now().Before(cur.expiresAt) {
            delete(m.items, key)
        }
        m.mu.Unlock()
        return nil, false
    }
    return e.records, true
}

func (m *Memory) Put(_ context.Context, key string, records []quote.ScoredQuote) {
    if m.ttl <= 0 {
        return
    }
    m.mu.Lock()
    m.items[key] = entry{expiresAt: m.now().Add(m.ttl), records: records}
    m.mu.Unlock()
}
