package httpx

import (
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// CircuitBreaker guards an outbound dependency. An open breaker fails calls
// immediately, which the embedding layer reports as a backend outage rather
// than a silently wrong result.
type CircuitBreaker interface {
	Execute(fn func() error) error
}

type breaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewCircuitBreaker trips after maxFailures consecutive failures and stays
// open for timeout; while half-open it lets through at most maxRequests
// probe calls before deciding to close again.
func NewCircuitBreaker(name string, timeout time.Duration, maxRequests, maxFailures uint32) CircuitBreaker {
	return &breaker{
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: maxRequests,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
		}),
	}
}

func (b *breaker) Execute(fn func() error) error {
	if _, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	}); err != nil {
		return fmt.Errorf("breaker (%s): %w", b.cb.Name(), err)
	}
	return nil
}
