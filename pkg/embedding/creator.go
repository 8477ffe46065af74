package embedding

import "context"

// Creator turns text into a fixed-length vector. Embedding generation is the
// pipeline's only expected suspension point, so every implementation takes a
// context and must honor cancellation.
type Creator interface {
	Generate(ctx context.Context, text string) (*Embedding, error)
	Dimensions() int
}
