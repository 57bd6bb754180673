package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Limited throttles calls to the wrapped Completer.
type Limited struct {
	next    Completer
	limiter *rate.Limiter
}

// NewLimited allows at most perMinute calls per minute through to next.
func NewLimited(next Completer, perMinute int) *Limited {
	return &Limited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

// Complete waits for the limiter, then delegates.
func (l *Limited) Complete(ctx context.Context, prompt string) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait failed: %w", err)
	}

	return l.next.Complete(ctx, prompt)
}
