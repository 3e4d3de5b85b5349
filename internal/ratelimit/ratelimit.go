// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ratelimit implements the fixed-window request limiter protecting
// the public profile and card endpoints.
//
// Counters live in Redis so that every API replica shares them. Client
// addresses are HMAC-hashed before they become part of a key.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/tapcard/internal/config"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/internal/utils"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "tapcard:ratelimit"
	pingTimeout = 3 * time.Second
)

// Result is the outcome of one Allow call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetIn is the time left until the current window closes.
	ResetIn time.Duration
}

// Limiter decides whether one more request of key fits the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

type redisLimiter struct {
	client   redis.Cmdable
	requests int
	window   time.Duration
	hashKey  string
	now      func() time.Time
}

// NewRedisLimiter returns a Limiter counting requests in client.
func NewRedisLimiter(client redis.Cmdable, cfg config.RateLimit, hashKey string) Limiter {
	return &redisLimiter{
		client:   client,
		requests: cfg.Requests,
		window:   cfg.Window,
		hashKey:  hashKey,
		now:      time.Now,
	}
}

// Allow increments the counter of key's current window. The counter key
// expires together with the window.
func (l *redisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	now := l.now()
	index := now.UnixNano() / int64(l.window)
	resetIn := time.Duration((index+1)*int64(l.window) - now.UnixNano())

	counterKey := fmt.Sprintf("%s:%s:%d", keyPrefix, utils.HashString(key, l.hashKey), index)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, counterKey)
	pipe.Expire(ctx, counterKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("error counting request: %w", err)
	}

	count := int(incr.Val())
	remaining := l.requests - count
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   count <= l.requests,
		Limit:     l.requests,
		Remaining: remaining,
		ResetIn:   resetIn,
	}, nil
}

type noopLimiter struct{}

// NewNoopLimiter returns a Limiter that allows everything.
func NewNoopLimiter() Limiter {
	return noopLimiter{}
}

func (noopLimiter) Allow(context.Context, string) (Result, error) {
	return Result{Allowed: true}, nil
}

// New builds the limiter described by cfg. Without a Redis address the
// limiter is disabled. The returned close function releases the client.
func New(cfg config.StructuredConfig, logger *logger.Logger) (Limiter, func() error, error) {
	if cfg.Storage.Redis.Address == "" {
		logger.Info().Msg("redis address is not set, rate limiting disabled")
		return NewNoopLimiter(), func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Storage.Redis.Address,
		Password: cfg.Storage.Redis.Password,
		DB:       cfg.Storage.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	logger.Info().
		Str("address", cfg.Storage.Redis.Address).
		Int("requests", cfg.Server.RateLimit.Requests).
		Dur("window", cfg.Server.RateLimit.Window).
		Msg("rate limiter connected")

	return NewRedisLimiter(client, cfg.Server.RateLimit, cfg.App.HashKey), client.Close, nil
}
