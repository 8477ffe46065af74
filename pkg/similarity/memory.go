package similarity

import (
	"context"
	"sync"
)

// MemoryRepository is the in-process corpus store: a read-mostly cache with
// per-key atomic upserts guarded by a RWMutex.
type MemoryRepository struct {
	mu    sync.RWMutex
	posts map[string]Post
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{posts: make(map[string]Post)}
}

func (r *MemoryRepository) Upsert(ctx context.Context, post Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Snapshot the vector so later caller mutations cannot tear a stored entry.
	stored := post
	stored.Embedding = append([]float64(nil), post.Embedding...)
	stored.Topics = append([]string(nil), post.Topics...)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.posts[post.ID]; !exists {
		r.order = append(r.order, post.ID)
	}
	r.posts[post.ID] = stored
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (Post, bool, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	post, ok := r.posts[id]
	return post, ok, nil
}

func (r *MemoryRepository) All(ctx context.Context) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Post, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.posts[id])
	}
	return out, nil
}

// Len reports the corpus size.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.posts)
}
