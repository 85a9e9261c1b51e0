package elasticsearch

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Connect creates a client and waits until Elasticsearch answers a ping,
// doubling the delay between attempts up to 30s.
func Connect(ctx context.Context, addr, index string, log *slog.Logger, maxRetries int) (*Client, error) {
	if maxRetries <= 0 {
		maxRetries = 1
	}
	retryDelay := 2 * time.Second

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		client, err := New(addr, index, log)
		if err != nil {
			return nil, err
		}

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		lastErr = client.Ping(pingCtx)
		cancel()
		if lastErr == nil {
			client.log.Info("connected to elasticsearch", slog.String("addr", addr), slog.String("index", index))
			return client, nil
		}

		client.log.Warn("elasticsearch ping failed, retrying",
			slog.Any("err", lastErr),
			slog.Int("attempt", i+1),
			slog.Int("max_retries", maxRetries),
			slog.Duration("retry_in", retryDelay),
		)

		if i == maxRetries-1 {
			break
		}
		select {
		case <-time.After(retryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		retryDelay *= 2
		if retryDelay > 30*time.Second {
			retryDelay = 30 * time.Second
		}
	}

	return nil, fmt.Errorf("connect elasticsearch after %d attempts: %w", maxRetries, lastErr)
}
