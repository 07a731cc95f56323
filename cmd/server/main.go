package main

import (
    "compress/gzip"
    "context"
    "io"
    "net/http"
    "os"
    "os/signal"
    "strings"
    "sync"
    "syscall"
    "time"

    "go.uber.org/zap"

    "quotescore/internal/cache"
    "quotescore/internal/config"
    "quotescore/internal/httpx"
    "quotescore/internal/logging"
    "quotescore/internal/marketstack"
    "quotescore/internal/quote"
    "quotescore/internal/ratelimit"
)

func main() {
    cfgPath := os.Getenv("CONFIG_FILE")
    cfg, err := config.Load(cfgPath)
    if err != nil {
        // no logger this early
        panic(err)
    }

    log, err := logging.NewLogger(cfg.Server.Env)
    if err != nil { panic(err) }
    defer log.Sync()

    if cfg.Marketstack.AccessKey == "" {
        log.Warn("MARKETSTACK_KEY not set; every request will fail with config_error")
    }

    httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

    msClient, err := marketstack.NewClient(
        cfg.Marketstack.AccessKey,
        marketstack.WithBaseURL(cfg.Marketstack.Endpoint),
        marketstack.WithHTTPClient(httpClient),
        marketstack.WithRetryPolicy(marketstack.RetryPolicy{
            MaxAttempts: cfg.Marketstack.RetryMaxAttempts,
            BaseDelay:   time.Duration(cfg.Marketstack.RetryBaseDelayMs) * time.Millisecond,
            Multiplier:  2,
        }),
    )
    if err != nil { log.Fatal("marketstack client", zap.Error(err)) }

    var fetcher quote.Fetcher = msClient
    // Prefer token bucket with burst if RPM is set, otherwise use min-interval
    if cfg.Marketstack.MaxRequestsPerMinute > 0 {
        rate := float64(cfg.Marketstack.MaxRequestsPerMinute) / 60.0
        burst := cfg.Marketstack.Burst
        if burst <= 0 { burst = 1 }
        fetcher = &ratelimit.TokenBucketFetcher{F: fetcher, TB: ratelimit.NewTokenBucket(rate, burst)}
    } else if cfg.Marketstack.MinRequestIntervalSec > 0 {
        interval := time.Duration(cfg.Marketstack.MinRequestIntervalSec) * time.Second
        fetcher = &ratelimit.MinInterval{F: fetcher, Interval: interval}
    }

    ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
    var store quote.Cache
    switch cfg.Cache.Backend {
    case "redis":
        rc, err := cache.NewRedis(context.Background(), cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB, ttl)
        if err != nil { log.Fatal("redis cache", zap.Error(err)) }
        defer rc.Close()
        store = rc
    default:
        store = cache.NewMemory(ttl)
    }

    svc := quote.NewService(fetcher, store, cfg.Marketstack.AccessKey != "", log)

    mux := http.NewServeMux()
    mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    })
    mux.HandleFunc("/api/quotes", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodGet {
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
            return
        }
        handleGetQuotes(w, r, svc)
    })

    srv := &http.Server{
        Addr:              ":" + cfg.Server.Port,
        Handler:           withJSONHeaders(withGzip(recoverPanic(mux))),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        WriteTimeout:      20 * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    go func() {
        log.Info("server listening", zap.String("port", cfg.Server.Port))
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatal("server", zap.Error(err))
        }
    }()

    // graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = srv.Shutdown(shutdownCtx)
}

func withJSONHeaders(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json; charset=utf-8")
        // Basic CORS for browser usage; adjust as needed.
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
        w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
        if r.Method == http.MethodOptions {
            w.WriteHeader(http.StatusNoContent)
            return
        }
        next.ServeHTTP(w, r)
    })
}

// withGzip compresses response when client supports gzip.
func withGzip(next http.Handler) http.Handler {
    var gzPool = sync.Pool{New: func() any {
        // Prefer best speed to reduce CPU usage since payloads are JSON
        w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
        return w
    }}
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
            next.ServeHTTP(w, r)
            return
        }
        gz := gzPool.Get().(*gzip.Writer)
        gz.Reset(w)
        defer func() {
            _ = gz.Close()
            gz.Reset(io.Discard)
            gzPool.Put(gz)
        }()
        w.Header().Set("Content-Encoding", "gzip")
        w.Header().Add("Vary", "Accept-Encoding")
        gw := gzipResponseWriter{ResponseWriter: w, Writer: gz}
        next.ServeHTTP(gw, r)
    })
}

type gzipResponseWriter struct {
    http.ResponseWriter
    Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
    return g.Writer.Write(b)
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                http.Error(w, "internal server error", http.StatusInternalServerError)
            }
        }()
        next.ServeHTTP(w, r)
    })
}
