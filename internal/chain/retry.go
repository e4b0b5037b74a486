package chain

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"golang.org/x/time/rate"
)

// ContractCaller is the eth_call surface a RetryCaller wraps.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// RetryCaller retries failed eth_calls with exponential backoff. Every
// attempt, retries included, waits on the limiter when one is set.
type RetryCaller struct {
	caller     ContractCaller
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
}

func NewRetryCaller(caller ContractCaller, limiter *rate.Limiter, maxRetries int, baseDelay time.Duration) *RetryCaller {
	return &RetryCaller{caller: caller, limiter: limiter, maxRetries: maxRetries, baseDelay: baseDelay}
}

// NewLimiter allows perSecond calls with the given burst. A non-positive
// rate disables limiting.
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

func (r *RetryCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	var out []byte
	err := WithRetry(ctx, r.maxRetries, r.baseDelay, func(ctx context.Context) error {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		var err error
		out, err = r.caller.CallContract(ctx, msg, blockNumber)
		return err
	})
	return out, err
}

// WithRetry runs fn until it succeeds, doubling the delay after each failure.
// It makes at most maxRetries+1 attempts and returns the last error.
func WithRetry(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	delay := baseDelay
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
	}
}
