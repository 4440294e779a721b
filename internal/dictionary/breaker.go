package dictionary

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrBreakerOpen is returned while the breaker rejects lookups
var ErrBreakerOpen = errors.New("dictionary circuit breaker is open")

// Breaker wraps a Dictionary and stops calling it after a run of
// consecutive transport or status failures. Rejected lookups fail fast and
// are dropped like any other failed lookup.
type Breaker struct {
	dict Dictionary
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker trips after failures consecutive failed lookups
func NewBreaker(dict Dictionary, failures int, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if failures < 1 {
		failures = 1
	}

	settings := gobreaker.Settings{
		Name: dict.Name(),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failures)
		},
		// An unknown word says nothing about the health of the service
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoResult) || errors.Is(err, ErrMissingField)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("dictionary breaker changed state",
				zap.String("dictionary", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &Breaker{
		dict: dict,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the name of the wrapped dictionary
func (b *Breaker) Name() string {
	return b.dict.Name()
}

// Lookup forwards to the wrapped dictionary unless the breaker is open
func (b *Breaker) Lookup(ctx context.Context, word string) (*Entry, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.dict.Lookup(ctx, word)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrBreakerOpen, err)
	}
	if err != nil {
		return nil, err
	}
	return result.(*Entry), nil
}

// State returns the current breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
