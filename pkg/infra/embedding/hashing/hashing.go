package hashing

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/quietharbor/sanctum/pkg/embedding"
)

// DefaultDimensions is the vector width of the feature-hash embedder.
const DefaultDimensions = 256

// Creator is the offline placeholder embedder: unigram and bigram tokens are
// feature-hashed into a fixed-width vector, then L2-normalized. Identical
// text always maps to the same vector (cosine 1.0), which is the contract the
// similarity index depends on; a remote model slots in behind the same
// interface without touching ranking.
type Creator struct {
	dimensions int
}

func NewCreator(dimensions int) *Creator {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &Creator{dimensions: dimensions}
}

func (c *Creator) Dimensions() int { return c.dimensions }

func (c *Creator) Generate(ctx context.Context, text string) (*embedding.Embedding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value := make([]float64, c.dimensions)
	tokens := tokenize(text)

	for i, token := range tokens {
		c.accumulate(value, token)
		if i+1 < len(tokens) {
			// Bigrams keep a little word-order signal.
			c.accumulate(value, token+" "+tokens[i+1])
		}
	}

	normalize(value)

	return &embedding.Embedding{
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (c *Creator) accumulate(value []float64, token string) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(token))
	sum := h.Sum64()

	index := int(sum % uint64(c.dimensions))
	// A second hash bit picks the sign so collisions cancel out on average.
	if (sum>>32)&1 == 1 {
		value[index] -= 1
	} else {
		value[index] += 1
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func normalize(value []float64) {
	var sumSquares float64
	for _, v := range value {
		sumSquares += v * v
	}
	norm := math.Sqrt(sumSquares)
	if norm == 0 {
		return
	}
	for i := range value {
		value[i] /= norm
	}
}
