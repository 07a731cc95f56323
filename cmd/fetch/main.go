package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "os"
    "time"

    "go.uber.org/zap"

    "quotescore/internal/cache"
    "quotescore/internal/config"
    "quotescore/internal/httpx"
    "quotescore/internal/marketstack"
    "quotescore/internal/quote"
)

// fetch runs the pipeline once for a symbol list and prints the snapshot
// JSON. Handy for smoke-testing a key or eyeballing scores without the
// server.
func main() {
    var symbolsRaw string
    var timeout int
    var configPath string

    flag.StringVar(&symbolsRaw, "symbols", getenv("SYMBOLS", "AAPL;MSFT"), "';' or ',' separated ticker symbols")
    flag.IntVar(&timeout, "timeout", 15, "request timeout seconds")
    flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
    flag.Parse()

    cfg, err := config.Load(configPath)
    if err != nil { fatal("config: %v", err) }
    if timeout != 0 { cfg.Server.RequestTimeoutSec = timeout }

    httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
    msClient, err := marketstack.NewClient(
        cfg.Marketstack.AccessKey,
        marketstack.WithBaseURL(cfg.Marketstack.Endpoint),
        marketstack.WithHTTPClient(httpClient),
    )
    if err != nil { fatal("marketstack client: %v", err) }

    // one-shot run: the cache only matters for key/TTL plumbing parity
    svc := quote.NewService(msClient, cache.NewMemory(time.Duration(cfg.Cache.TTLSeconds)*time.Second), cfg.Marketstack.AccessKey != "", zap.NewNop())

    snap, err := svc.Snapshot(context.Background(), symbolsRaw)
    if err != nil { fatal("%v", err) }

    enc := json.NewEncoder(os.Stdout)
    enc.SetIndent("", "  ")
    enc.SetEscapeHTML(false)
    _ = enc.Encode(snap)
}

func fatal(format string, args ...any) {
    fmt.Fprintf(os.Stderr, format+"\n", args...)
    os.Exit(1)
}

func getenv(key, def string) string { if v := os.Getenv(key); v != "" { return v }; return def }
