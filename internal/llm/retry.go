package llm

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

// RetryProvider is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	log    *zap.Logger
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &RetryProvider{inner: p, config: cfg, log: log}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	invalidRetried := false

	return retry.DoWithData(
		func() (*Response, error) {
			return r.inner.Generate(ctx, req)
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts()),
		retry.Delay(r.config.Delay),
		retry.MaxDelay(r.config.MaxDelay),
		retry.MaxJitter(r.config.MaxJitter),
		retry.DelayType(r.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return shouldRetry(err, &invalidRetried)
		}),
		retry.OnRetry(func(n uint, err error) {
			r.log.Warn("retrying LLM request",
				zap.String("purpose", PurposeFrom(ctx)),
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// attempts never returns 0; retry-go treats 0 as "retry forever".
func (r *RetryProvider) attempts() uint {
	if r.config.Attempts == 0 {
		return 1
	}
	return r.config.Attempts
}

// delay honours a provider's Retry-After hint, otherwise backs off
// exponentially with random jitter.
func (r *RetryProvider) delay(n uint, err error, cfg *retry.Config) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	return retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)(n, err, cfg)
}

// shouldRetry classifies an error. Invalid responses get exactly one retry.
func shouldRetry(err error, invalidRetried *bool) bool {
	if !Transient(err) {
		return false
	}

	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
	}
	return true
}
