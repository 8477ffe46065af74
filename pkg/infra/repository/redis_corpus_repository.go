package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/go-redis/redis/v8"

	"github.com/quietharbor/sanctum/pkg/similarity"
)

const (
	corpusKeyPattern = "corpus:%s"
	corpusKeyMatch   = "corpus:*"
	scanBatch        = 100
)

// RedisCorpusRepository is the durable variant of the similarity corpus: one
// JSON value per post. Redis SET is atomic per key, which satisfies the
// repository's upsert contract; no cross-key transaction is attempted.
type RedisCorpusRepository struct {
	client *redis.Client
}

func NewRedisCorpusRepository(client *redis.Client) *RedisCorpusRepository {
	return &RedisCorpusRepository{client: client}
}

func (r *RedisCorpusRepository) Upsert(ctx context.Context, post similarity.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("marshal corpus entry: %w", err)
	}

	key := fmt.Sprintf(corpusKeyPattern, post.ID)
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("store corpus entry: %w", err)
	}
	return nil
}

func (r *RedisCorpusRepository) Get(ctx context.Context, id string) (similarity.Post, bool, error) {
	key := fmt.Sprintf(corpusKeyPattern, id)

	data, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return similarity.Post{}, false, nil
	}
	if err != nil {
		return similarity.Post{}, false, fmt.Errorf("get corpus entry: %w", err)
	}

	var post similarity.Post
	if err := json.Unmarshal([]byte(data), &post); err != nil {
		return similarity.Post{}, false, fmt.Errorf("unmarshal corpus entry: %w", err)
	}
	return post, true, nil
}

func (r *RedisCorpusRepository) All(ctx context.Context) ([]similarity.Post, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, corpusKeyMatch, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read corpus entries: %w", err)
	}

	posts := make([]similarity.Post, 0, len(values))
	for _, value := range values {
		data, ok := value.(string)
		if !ok {
			// Entry expired or was deleted between SCAN and MGET.
			continue
		}
		var post similarity.Post
		if err := json.Unmarshal([]byte(data), &post); err != nil {
			return nil, fmt.Errorf("unmarshal corpus entry: %w", err)
		}
		posts = append(posts, post)
	}

	// SCAN order is arbitrary; sort by indexing time (then ID) so score ties
	// rank in the same stable order as the in-memory store.
	sort.SliceStable(posts, func(a, b int) bool {
		if posts[a].IndexedAt.Equal(posts[b].IndexedAt) {
			return posts[a].ID < posts[b].ID
		}
		return posts[a].IndexedAt.Before(posts[b].IndexedAt)
	})

	return posts, nil
}
