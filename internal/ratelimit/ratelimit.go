package ratelimit

import (
    "context"
    "sync"
    "time"

    "quotescore/internal/quote"
)

// MinInterval wraps a Fetcher and enforces a minimum time between upstream
// calls. Concurrent calls wait until the interval has elapsed since the last
// call, or return early if the context is canceled. Useful on free upstream
// plans where every avoided 429 saves a whole retry cycle.
type MinInterval struct {
    F        quote.Fetcher
    Interval time.Duration
    mu       sync.Mutex
    last     time.Time
}

func (m *MinInterval) EODLatest(ctx context.Context, symbols []string) ([]quote.UpstreamRecord, error) {
    if m.Interval > 0 {
        // simple gate: ensure at least Interval since last
        m.mu.Lock()
        wait := time.Until(m.last.Add(m.Interval))
        m.mu.Unlock()
        if wait > 0 {
            t := time.NewTimer(wait)
            defer t.Stop()
            select {
            case <-ctx.Done():
                return nil, ctx.Err()
            case <-t.C:
            }
        }
    }
    recs, err := m.F.EODLatest(ctx, symbols)
    if m.Interval > 0 {
        m.mu.Lock()
        m.last = time.Now()
        m.mu.Unlock()
    }
    return recs, err
}
