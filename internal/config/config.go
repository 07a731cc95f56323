package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "strings"

    "github.com/joho/godotenv"
)

type Server struct {
    Port              string `json:"port"`
    Env               string `json:"env"`
    RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type Marketstack struct {
    AccessKey        string `json:"access_key"`
    Endpoint         string `json:"endpoint"`
    RetryMaxAttempts int    `json:"retry_max_attempts"`
    RetryBaseDelayMs int    `json:"retry_base_delay_ms"`
    // Outbound gating to avoid burning the retry budget in the first place.
    // MaxRequestsPerMinute enables a token bucket; MinRequestIntervalSec is
    // the simpler fallback gate.
    MaxRequestsPerMinute  int `json:"max_requests_per_minute"`
    Burst                 int `json:"burst"`
    MinRequestIntervalSec int `json:"min_request_interval_sec"`
}

type Redis struct {
    Addr     string `json:"addr"`
    Password string `json:"password"`
    DB       int    `json:"db"`
}

type Cache struct {
    Backend    string `json:"backend"` // "memory" or "redis"
    TTLSeconds int    `json:"ttl_sec"`
    Redis      Redis  `json:"redis"`
}

type Config struct {
    Server      Server      `json:"server"`
    Marketstack Marketstack `json:"marketstack"`
    Cache       Cache       `json:"cache"`
}

func Default() Config {
    return Config{
        Server: Server{Port: "8080", Env: "production", RequestTimeoutSec: 10},
        Marketstack: Marketstack{
            Endpoint:         "http://api.marketstack.com",
            RetryMaxAttempts: 3,
            RetryBaseDelayMs: 500,
        },
        Cache: Cache{
            Backend:    "memory",
            TTLSeconds: 300,
            Redis:      Redis{Addr: "localhost:6379"},
        },
    }
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. A local .env file is loaded first so that environment
// overrides (the only place the access key should live) work in development
// the same way they do in deployment.
func Load(path string) (Config, error) {
    _ = godotenv.Load()

    cfg := Default()
    if path == "" {
        if _, err := os.Stat("config.json"); err == nil {
            path = "config.json"
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := json.Unmarshal(b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }
    applyEnv(&cfg)
    return cfg, nil
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
    if v := os.Getenv("APP_ENV"); v != "" { cfg.Server.Env = v }
    if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Server.RequestTimeoutSec = x }
    }
    if v := os.Getenv("MARKETSTACK_KEY"); v != "" { cfg.Marketstack.AccessKey = v }
    if v := os.Getenv("MARKETSTACK_ENDPOINT"); v != "" { cfg.Marketstack.Endpoint = v }
    if v := os.Getenv("MARKETSTACK_RETRY_MAX_ATTEMPTS"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Marketstack.RetryMaxAttempts = x }
    }
    if v := os.Getenv("MARKETSTACK_RETRY_BASE_DELAY_MS"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Marketstack.RetryBaseDelayMs = x }
    }
    if v := os.Getenv("MARKETSTACK_MAX_RPM"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.Marketstack.MaxRequestsPerMinute = x }
    }
    if v := os.Getenv("MARKETSTACK_BURST"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Marketstack.Burst = x }
    }
    if v := os.Getenv("MARKETSTACK_MIN_INTERVAL_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.Marketstack.MinRequestIntervalSec = x }
    }
    if v := os.Getenv("CACHE_BACKEND"); v != "" {
        switch strings.ToLower(v) {
        case "memory", "redis":
            cfg.Cache.Backend = strings.ToLower(v)
        }
    }
    if v := os.Getenv("CACHE_TTL_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.Cache.TTLSeconds = x }
    }
    if v := os.Getenv("REDIS_ADDR"); v != "" { cfg.Cache.Redis.Addr = v }
    if v := os.Getenv("REDIS_PASSWORD"); v != "" { cfg.Cache.Redis.Password = v }
    if v := os.Getenv("REDIS_DB"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.Cache.Redis.DB = x }
    }
}
