package cache

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    "github.com/redis/go-redis/v9"

    "quotescore/internal/quote"
)

// Redis stores scored batches as JSON blobs with server-side TTL expiry.
// Useful when several instances should share one quote cache, or when key
// cardinality is high enough that relying on process restarts to reclaim
// memory stops being acceptable.
type Redis struct {
    rdb *redis.Client
    ttl time.Duration
}

// NewRedis connects and pings the server so a bad address fails at startup
// rather than on the first request.
func NewRedis(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Redis, error) {
    rdb := redis.NewClient(&redis.Options{
        Addr:     addr,
        Password: password,
        DB:       db,
    })
    if err := rdb.Ping(ctx).Err(); err != nil {
        return nil, fmt.Errorf("redis ping: %w", err)
    }
    return &Redis{rdb: rdb, ttl: ttl}, nil
}

func (r *Redis) Close() error { return r.rdb.Close() }

func key(k string) string { return "quotes:" + k }

// Get treats every Redis failure as a miss; the pipeline then refetches,
// which is the same behavior a cold cache would produce.
func (r *Redis) Get(ctx context.Context, k string) ([]quote.ScoredQuote, bool) {
    b, err := r.rdb.Get(ctx, key(k)).Bytes()
    if err != nil {
        return nil, false
    }
    var records []quote.ScoredQuote
    if err := json.Unmarshal(b, &records); err != nil {
        return nil, false
    }
    return records, true
}

func (r *Redis) Put(ctx context.Context, k string, records []quote.ScoredQuote) {
    if r.ttl <= 0 {
        return
    }
    b, err := json.Marshal(records)
    if err != nil {
        return
    }
    // best effort: a write failure only costs a refetch later
    _ = r.rdb.Set(ctx, key(k), b, r.ttl).Err()
}
