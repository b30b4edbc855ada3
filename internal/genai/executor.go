package genai

import (
	"context"
	"fmt"
	"log"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultBackoffBase = 1 * time.Second
)

// Executor retries a TextGenerator call on transport failure with
// exponential backoff. It never inspects response content; a call that
// returns text is a success even if the text later fails to parse.
type Executor struct {
	generator   TextGenerator
	maxAttempts int
	backoffBase time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewExecutor wraps a generator with the default retry policy
// (3 attempts, 1s base backoff doubling between attempts).
func NewExecutor(generator TextGenerator) *Executor {
	return NewExecutorWithPolicy(generator, defaultMaxAttempts, defaultBackoffBase)
}

// NewExecutorWithPolicy wraps a generator with an explicit retry policy.
// A zero backoff removes the wait between attempts.
func NewExecutorWithPolicy(generator TextGenerator, maxAttempts int, backoffBase time.Duration) *Executor {
	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}
	return &Executor{
		generator:   generator,
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
		sleep:       sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Execute issues the prompt, retrying up to the attempt ceiling. After the
// final attempt the last error is returned unchanged in meaning, wrapped
// with attempt context.
func (e *Executor) Execute(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	backoff := e.backoffBase
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		text, err := e.generator.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt < e.maxAttempts {
			log.Printf("WARN: generation attempt %d/%d failed, retrying in %v: %v", attempt, e.maxAttempts, backoff, err)
			if err := e.sleep(ctx, backoff); err != nil {
				return "", fmt.Errorf("generation canceled during backoff: %w", err)
			}
			backoff *= 2
		}
	}

	return "", fmt.Errorf("generation failed after %d attempts: %w", e.maxAttempts, lastErr)
}
