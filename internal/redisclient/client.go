package redisclient

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const clientName = "app-cadastro"

// Client wraps a Redis client with OpenTelemetry tracing
type Client struct {
	cmdable redis.Cmdable
	closer  func() error
}

// NewClient creates a new traced Redis client for single Redis instance
func NewClient(client *redis.Client) *Client {
	return &Client{cmdable: client, closer: client.Close}
}

func (c *Client) startSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("redis.operation", operation),
		attribute.String("redis.client", clientName),
	)
	return otel.Tracer("redis").Start(ctx, "redis."+operation, trace.WithAttributes(attrs...))
}

// finishSpan records duration and outcome. redis.Nil is a miss, not an error.
func finishSpan(span trace.Span, start time.Time, err error) {
	duration := time.Since(start)
	span.SetAttributes(
		attribute.Int64("redis.duration_ms", duration.Milliseconds()),
		attribute.String("redis.duration", duration.String()),
	)
	if err != nil && !errors.Is(err, redis.Nil) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("redis.error", err.Error()))
	} else {
		span.SetStatus(codes.Ok, "success")
	}
	span.End()
}

// Incr wraps Redis Incr with tracing
func (c *Client) Incr(ctx context.Context, key string) *redis.IntCmd {
	start := time.Now()
	ctx, span := c.startSpan(ctx, "incr", attribute.String("redis.key", key))

	cmd := c.cmdable.Incr(ctx, key)
	finishSpan(span, start, cmd.Err())
	return cmd
}

// Expire wraps Redis Expire with tracing
func (c *Client) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	start := time.Now()
	ctx, span := c.startSpan(ctx, "expire",
		attribute.String("redis.key", key),
		attribute.String("redis.expiration", expiration.String()),
	)

	cmd := c.cmdable.Expire(ctx, key, expiration)
	finishSpan(span, start, cmd.Err())
	return cmd
}

// Ping wraps Redis Ping with tracing
func (c *Client) Ping(ctx context.Context) *redis.StatusCmd {
	start := time.Now()
	ctx, span := c.startSpan(ctx, "ping")

	cmd := c.cmdable.Ping(ctx)
	finishSpan(span, start, cmd.Err())
	return cmd
}

// Close releases the underlying connection pool
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}
