package config

// Redis backs two concerns in this service: the distributed rate limiter and
// the cache in front of the token revocation ledger.  Neither is load
// bearing for correctness, so a missing or unreachable Redis never blocks
// startup: NewRedisClient returns nil, the limiter becomes a no-op and every
// revocation check goes straight to MySQL.

import (
    "context"
    "crypto/tls"
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"
)

// NewRedisClient builds a Redis client from the environment and verifies it
// with a short ping.  Recognized variables:
//   REDIS_ADDR     – host:port shorthand
//   REDIS_HOST and REDIS_PORT – taken over REDIS_ADDR when both are set
//   REDIS_PASSWORD – optional password
//   REDIS_DB       – database number (default 0)
//   REDIS_TLS      – enable TLS when "true" or "1"
// When the ping fails the failure is logged with the address and nil is
// returned; callers treat nil as "run without Redis".
func NewRedisClient() *redis.Client {
    addr := os.Getenv("REDIS_ADDR")
    if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
        addr = host + ":" + port
    }
    if addr == "" {
        addr = "localhost:6379"
    }
    dbNum := 0
    if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
        if n, err := strconv.Atoi(dbStr); err == nil {
            dbNum = n
        }
    }
    var tlsConf *tls.Config
    if tlsEnv := os.Getenv("REDIS_TLS"); strings.EqualFold(tlsEnv, "true") || tlsEnv == "1" {
        tlsConf = &tls.Config{InsecureSkipVerify: true}
    }
    client := redis.NewClient(&redis.Options{
        Addr:        addr,
        Password:    os.Getenv("REDIS_PASSWORD"),
        DB:          dbNum,
        TLSConfig:   tlsConf,
        DialTimeout: 2 * time.Second,
    })

    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        zap.L().Warn("redis unreachable, running without rate limiting and blocklist cache",
            zap.String("addr", addr), zap.Error(err))
        _ = client.Close()
        return nil
    }
    return client
}
