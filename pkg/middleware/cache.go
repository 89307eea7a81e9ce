package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cinema-reservations/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// captureWriter tees the response body so a 200 can be stored after the handler ran
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// ResponseCache caches successful GET responses in Redis. Every successful write
// bumps a generation counter that is part of each key, so any POST, PUT or DELETE
// invalidates all cached reads at once.
type ResponseCache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

func NewResponseCache(rdb redis.Cmdable, cfg utils.CacheConfig, log *zap.Logger) *ResponseCache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "cache"
	}

	return &ResponseCache{
		rdb:    rdb,
		ttl:    ttl,
		prefix: prefix,
		log:    log.With(zap.String("middleware", "cache")),
	}
}

func (c *ResponseCache) generationKey() string {
	return c.prefix + ":generation"
}

// Key builds the cache key for a request under the given generation
func (c *ResponseCache) Key(generation int64, r *http.Request) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%d:%x", c.prefix, generation, sum[:])
}

func (c *ResponseCache) generation(ctx context.Context) (int64, error) {
	n, err := c.rdb.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (c *ResponseCache) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			c.serveRead(next, w, r)
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			c.serveWrite(next, w, r)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (c *ResponseCache) serveRead(next http.Handler, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	generation, err := c.generation(ctx)
	if err != nil {
		c.log.Warn("Cache generation lookup failed", zap.Error(err))
		next.ServeHTTP(w, r)
		return
	}
	key := c.Key(generation, r)

	body, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}
	if !errors.Is(err, redis.Nil) {
		c.log.Warn("Cache read failed", zap.Error(err), zap.String("key", key))
	}

	w.Header().Set("X-Cache", "MISS")
	cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
	next.ServeHTTP(cw, r)

	if cw.status != http.StatusOK {
		return
	}
	if err := c.rdb.Set(context.WithoutCancel(ctx), key, cw.buf.Bytes(), c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", zap.Error(err), zap.String("key", key))
	}
}

// Invalidate drops every cached read by moving to the next generation. Writers
// outside the HTTP path, such as the expiry sweeper, call it directly.
func (c *ResponseCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, c.generationKey()).Err()
}

func (c *ResponseCache) serveWrite(next http.Handler, w http.ResponseWriter, r *http.Request) {
	rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
	next.ServeHTTP(rw, r)

	if rw.statusCode >= http.StatusBadRequest {
		return
	}
	if err := c.Invalidate(context.WithoutCancel(r.Context())); err != nil {
		c.log.Warn("Cache invalidation failed", zap.Error(err))
	}
}
