package ratelimit

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-token-prober/internal/adapter"
	"github.com/feral-file/ff-token-prober/internal/config"
	"github.com/feral-file/ff-token-prober/internal/logger"
)

// Infura and Alchemy report exhausted quotas with this JSON-RPC code
const rpcLimitExceededCode = -32005

// client wraps an EthClient with a local token bucket and retries calls the provider throttled
type client struct {
	inner   adapter.EthClient
	limiter *rate.Limiter
	cfg     config.RateLimitConfig
}

// NewEthClient returns an EthClient that waits for a token before every call and retries
// provider rate-limit failures with exponential backoff.
// A zero RequestsPerSecond disables local limiting, a zero MaxElapsedTime disables retries,
// and when both are zero the inner client is returned unchanged.
func NewEthClient(inner adapter.EthClient, cfg config.RateLimitConfig) adapter.EthClient {
	if cfg.RequestsPerSecond <= 0 && cfg.MaxElapsedTime <= 0 {
		return inner
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	logger.Info("RPC rate limiter enabled",
		zap.Float64("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("burst", burst),
		zap.Duration("max_elapsed_time", cfg.MaxElapsedTime),
	)

	return &client{
		inner:   inner,
		limiter: rate.NewLimiter(limit, burst),
		cfg:     cfg,
	}
}

func (c *client) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return do(ctx, c, "eth_call", func() ([]byte, error) {
		return c.inner.CallContract(ctx, msg, blockNumber)
	})
}

func (c *client) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	return do(ctx, c, "eth_getCode", func() ([]byte, error) {
		return c.inner.CodeAt(ctx, account, blockNumber)
	})
}

func (c *client) BlockNumber(ctx context.Context) (uint64, error) {
	return do(ctx, c, "eth_blockNumber", func() (uint64, error) {
		return c.inner.BlockNumber(ctx)
	})
}

func (c *client) Close() {
	c.inner.Close()
}

func (c *client) newBackOff() backoff.BackOff {
	if c.cfg.MaxElapsedTime <= 0 {
		return &backoff.StopBackOff{}
	}

	b := backoff.NewExponentialBackOff()
	if c.cfg.InitialInterval > 0 {
		b.InitialInterval = c.cfg.InitialInterval
	}
	if c.cfg.MaxInterval > 0 {
		b.MaxInterval = c.cfg.MaxInterval
	}
	b.MaxElapsedTime = c.cfg.MaxElapsedTime
	return b
}

// do runs fn after acquiring a token, retrying only while the provider keeps throttling
func do[T any](ctx context.Context, c *client, op string, fn func() (T, error)) (T, error) {
	var result T

	operation := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		value, err := fn()
		if err != nil {
			if IsRateLimited(err) {
				return err
			}
			// Reverts and other failures are answers, not transient errors
			return backoff.Permanent(err)
		}

		result = value
		return nil
	}

	var attemptCount int
	notifyOnError := func(err error, next time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "RPC call rate limited, retrying",
			zap.String("op", op),
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", next),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(c.newBackOff(), ctx), notifyOnError); err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

// IsRateLimited reports whether err is a provider throttling response
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
		return true
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == rpcLimitExceededCode {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests")
}
