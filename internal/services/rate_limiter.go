package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"github.com/prefeitura-rio/app-cadastro/internal/redisclient"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
	"go.uber.org/zap"
)

// SubmissionLimiter decides whether a client may submit a draft now
type SubmissionLimiter interface {
	Allow(ctx context.Context, key string) bool
}

// RateLimiter implements a token bucket rate limiter
type RateLimiter struct {
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
	logger     *logging.SafeLogger
}

// NewRateLimiter creates a new token bucket rate limiter
func NewRateLimiter(maxTokens int, refillRate time.Duration, logger *logging.SafeLogger) *RateLimiter {
	return &RateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
		logger:     logger,
	}
}

// Allow checks if a request should be allowed based on rate limiting
func (rl *RateLimiter) Allow(ctx context.Context, operation string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	// Refill tokens based on time elapsed
	now := time.Now()
	tokensToAdd := int(now.Sub(rl.lastRefill) / rl.refillRate)
	if tokensToAdd > 0 {
		rl.tokens += tokensToAdd
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		rl.lastRefill = rl.lastRefill.Add(time.Duration(tokensToAdd) * rl.refillRate)
	}

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}

	rl.logger.Warn("rate limiter rejected request",
		zap.String("operation", operation),
		zap.Int("max_tokens", rl.maxTokens))
	return false
}

// idle reports whether the bucket was untouched since cutoff and has refilled
func (rl *RateLimiter) idle(cutoff, now time.Time) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	if !rl.lastRefill.Before(cutoff) {
		return false
	}
	return rl.tokens+int(now.Sub(rl.lastRefill)/rl.refillRate) >= rl.maxTokens
}

// LocalSubmitLimiter keeps one token bucket per client in process memory
type LocalSubmitLimiter struct {
	perMinute int
	buckets   sync.Map // map[string]*RateLimiter
	logger    *logging.SafeLogger
}

// NewLocalSubmitLimiter allows perMinute submissions per client per minute
func NewLocalSubmitLimiter(perMinute int, logger *logging.SafeLogger) *LocalSubmitLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &LocalSubmitLimiter{perMinute: perMinute, logger: logger}
}

// Allow takes a token from the client's bucket
func (l *LocalSubmitLimiter) Allow(ctx context.Context, key string) bool {
	bucket, _ := l.buckets.LoadOrStore(key, NewRateLimiter(l.perMinute, time.Minute/time.Duration(l.perMinute), l.logger))
	return bucket.(*RateLimiter).Allow(ctx, "submit:"+key)
}

// CleanupOldEntries drops full buckets idle for longer than olderThan
func (l *LocalSubmitLimiter) CleanupOldEntries(olderThan time.Duration) int {
	now := time.Now()
	cutoff := now.Add(-olderThan)
	removed := 0
	l.buckets.Range(func(key, value interface{}) bool {
		if value.(*RateLimiter).idle(cutoff, now) {
			l.buckets.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// RedisSubmitLimiter counts submissions per client in fixed one-minute
// windows shared by every instance. When Redis fails it falls back to the
// local limiter.
type RedisSubmitLimiter struct {
	redis     *redisclient.Client
	perMinute int
	fallback  SubmissionLimiter
	logger    *logging.SafeLogger
	now       func() time.Time
}

// NewRedisSubmitLimiter creates a Redis backed limiter
func NewRedisSubmitLimiter(redis *redisclient.Client, perMinute int, fallback SubmissionLimiter, logger *logging.SafeLogger) *RedisSubmitLimiter {
	return &RedisSubmitLimiter{
		redis:     redis,
		perMinute: perMinute,
		fallback:  fallback,
		logger:    logger,
		now:       time.Now,
	}
}

func (l *RedisSubmitLimiter) windowKey(key string) string {
	return fmt.Sprintf("app-cadastro:ratelimit:submit:%s:%d", key, l.now().Unix()/60)
}

// Allow increments the client's counter for the current window
func (l *RedisSubmitLimiter) Allow(ctx context.Context, key string) bool {
	windowKey := l.windowKey(key)
	ctx, span, cleanup := utils.TraceCacheOperation(ctx, "incr", windowKey)
	defer cleanup()

	count, err := l.redis.Incr(ctx, windowKey).Result()
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"ratelimit.fallback": true})
		l.logger.Warn("redis rate limiter unavailable, using local limiter", zap.Error(err))
		return l.fallback.Allow(ctx, key)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, windowKey, time.Minute).Err(); err != nil {
			l.logger.Warn("failed to set rate limit window expiration", zap.Error(err))
		}
	}

	utils.AddSpanAttribute(span, "ratelimit.count", count)
	if count > int64(l.perMinute) {
		l.logger.Warn("rate limiter rejected submission", zap.Int64("count", count), zap.Int("limit", l.perMinute))
		return false
	}
	return true
}
