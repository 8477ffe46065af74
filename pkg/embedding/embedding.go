package embedding

import (
	"errors"
	"time"
)

// ErrProviderUnavailable marks an embedding backend outage: HTTP failure,
// non-OK response or an open circuit breaker.
var ErrProviderUnavailable = errors.New("embedding provider unavailable")

// Embedding is a fixed-length, L2-normalized vector representation of text.
type Embedding struct {
	Value     []float64 `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}
