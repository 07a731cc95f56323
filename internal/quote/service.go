package quote

import (
    "context"

    "go.uber.org/zap"

    "quotescore/internal/symbol"
)

// Service sequences the pipeline for one request:
// normalize -> cache lookup -> fetch -> reconcile -> score -> cache store.
// Stages run sequentially; the upstream call is the only suspension point.
// The cache is written only on full success, so a failed request leaves no
// partial state behind.
type Service struct {
    fetcher Fetcher
    cache   Cache
    // hasCredential guards every request; without the upstream access key
    // the pipeline refuses to do anything, including validation, so that a
    // broken deployment fails the same way for every input.
    hasCredential bool
    log           *zap.Logger
}

// NewService wires the pipeline. Pass hasCredential=false when the upstream
// access key is absent from configuration.
func NewService(fetcher Fetcher, cache Cache, hasCredential bool, log *zap.Logger) *Service {
    if log == nil { log = zap.NewNop() }
    return &Service{fetcher: fetcher, cache: cache, hasCredential: hasCredential, log: log}
}

// Snapshot returns the latest scored snapshot for a raw symbol list, from
// cache when fresh. Failures are always a *Error with a stable Kind.
func (s *Service) Snapshot(ctx context.Context, raw string) (*Snapshot, error) {
    if !s.hasCredential {
        return nil, E(KindConfig, "MARKETSTACK_KEY missing")
    }

    symbols, err := symbol.Normalize(raw)
    if err != nil {
        return nil, Wrap(KindValidation, err)
    }
    key := symbol.Key(symbols)

    if data, ok := s.cache.Get(ctx, key); ok {
        s.log.Debug("cache hit", zap.String("key", key))
        return &Snapshot{Cached: true, Data: data}, nil
    }

    records, err := s.fetcher.EODLatest(ctx, symbols)
    if err != nil {
        s.log.Warn("upstream fetch failed", zap.String("key", key), zap.Error(err))
        return nil, err
    }

    scored := ScoreBatch(Reconcile(symbols, records))
    s.cache.Put(ctx, key, scored)
    s.log.Debug("cache store", zap.String("key", key), zap.Int("records", len(scored)))
    return &Snapshot{Cached: false, Data: scored}, nil
}
