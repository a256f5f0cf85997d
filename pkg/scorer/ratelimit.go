package scorer

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited wraps a Scorer with a token-bucket limiter so a batch driver
// fanning many sentences out concurrently does not overrun a real
// (blocking, possibly remote) neural scorer. Grounded on contextd's use of
// golang.org/x/time/rate to throttle outbound calls to shared backends.
type RateLimited struct {
	inner   Scorer
	limiter *rate.Limiter
}

// NewRateLimited wraps inner with a limiter allowing up to burst
// concurrent/instantaneous calls and refilling at ratePerSecond calls/sec.
func NewRateLimited(inner Scorer, ratePerSecond float64, burst int) *RateLimited {
	return &RateLimited{inner: inner, limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst)}
}

// Score waits for a limiter token (respecting ctx cancellation) before
// delegating to the wrapped Scorer.
func (r *RateLimited) Score(ctx context.Context, sentence []string) (Tensors, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return Tensors{}, err
	}
	return r.inner.Score(ctx, sentence)
}
