package quote

import "context"

// UpstreamRecord is one raw per-symbol EOD observation from the provider,
// validated at the client boundary. Any numeric field may be absent.
type UpstreamRecord struct {
    Symbol string
    Open   *float64
    Close  *float64
    Volume *float64
}

// Quote is the normalized per-symbol output unit. Nil numeric fields render
// as JSON null; Name defaults to "" when the provider knows nothing.
type Quote struct {
    Symbol    string   `json:"symbol"`
    Name      string   `json:"name"`
    Price     *float64 `json:"price"`
    ChangePct *float64 `json:"changePct"`
    Volume    *float64 `json:"volume"`
}

// ScoredQuote is a Quote with its batch-relative composite score.
type ScoredQuote struct {
    Quote
    Score float64 `json:"score"`
}

// Snapshot is the success payload for one request.
type Snapshot struct {
    Cached bool          `json:"cached"`
    Data   []ScoredQuote `json:"data"`
}

// Fetcher issues one grouped upstream request for a batch of symbols.
type Fetcher interface {
    EODLatest(ctx context.Context, symbols []string) ([]UpstreamRecord, error)
}

// Cache maps a symbol-set key to a previously scored batch. Get returns
// false both for missing and for expired entries; Put overwrites.
type Cache interface {
    Get(ctx context.Context, key string) ([]ScoredQuote, bool)
    Put(ctx context.Context, key string, records []ScoredQuote)
}
