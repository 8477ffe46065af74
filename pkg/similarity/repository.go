package similarity

import (
	"context"
	"time"
)

// Post is one corpus entry: an indexed, already-approved, anonymized post.
// Entries are immutable snapshots; re-indexing a post replaces the whole
// record in a single upsert.
type Post struct {
	ID                    string    `json:"id"`
	Embedding             []float64 `json:"embedding"`
	Content               string    `json:"content"`
	Topics                []string  `json:"topics"`
	HasPositiveResolution bool      `json:"has_positive_resolution"`
	ResponseCount         int       `json:"response_count"`
	ModerationApproved    bool      `json:"moderation_approved"`
	EmotionalIntensity    int       `json:"emotional_intensity"`
	IndexedAt             time.Time `json:"indexed_at"`
}

// Repository is the corpus access path, kept small so the in-memory store can
// be swapped for a real vector database without touching ranking logic.
// Upsert must be atomic per key: a concurrent reader observes the old or the
// new record, never a torn one. No cross-key guarantee is required.
type Repository interface {
	Upsert(ctx context.Context, post Post) error
	Get(ctx context.Context, id string) (Post, bool, error)
	// All returns a snapshot of every entry in a stable order; the memory
	// implementation preserves insertion order, which ranking relies on for
	// deterministic ties.
	All(ctx context.Context) ([]Post, error)
}
