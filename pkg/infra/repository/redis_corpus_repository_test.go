package repository_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietharbor/sanctum/pkg/infra/repository"
	"github.com/quietharbor/sanctum/pkg/similarity"
)

func mustMarshal(t *testing.T, post similarity.Post) []byte {
	t.Helper()
	data, err := json.Marshal(post)
	require.NoError(t, err)
	return data
}

func TestRedisCorpusRepository_UpsertAndGet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := repository.NewRedisCorpusRepository(client)
	ctx := context.Background()

	post := similarity.Post{
		ID:                 "post-1",
		Embedding:          []float64{0.6, 0.8},
		Content:            "quiet evening walk",
		Topics:             []string{"coping"},
		ModerationApproved: true,
		IndexedAt:          time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	data := mustMarshal(t, post)

	mock.ExpectSet("corpus:post-1", data, 0).SetVal("OK")
	require.NoError(t, repo.Upsert(ctx, post))

	mock.ExpectGet("corpus:post-1").SetVal(string(data))
	got, ok, err := repo.Get(ctx, "post-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, post, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCorpusRepository_GetMissing(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := repository.NewRedisCorpusRepository(client)

	mock.ExpectGet("corpus:missing").RedisNil()

	_, ok, err := repo.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCorpusRepository_AllSortsByIndexedAtThenID(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := repository.NewRedisCorpusRepository(client)

	early := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	late := time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC)

	postA := similarity.Post{ID: "a", IndexedAt: late}
	postB := similarity.Post{ID: "b", IndexedAt: early}
	postC := similarity.Post{ID: "c", IndexedAt: early}

	// SCAN surfaces keys in arbitrary order; All must not depend on it.
	mock.ExpectScan(0, "corpus:*", 100).SetVal([]string{"corpus:a", "corpus:c", "corpus:b"}, 0)
	mock.ExpectMGet("corpus:a", "corpus:c", "corpus:b").SetVal([]interface{}{
		string(mustMarshal(t, postA)),
		string(mustMarshal(t, postC)),
		string(mustMarshal(t, postB)),
	})

	posts, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "b", posts[0].ID)
	assert.Equal(t, "c", posts[1].ID)
	assert.Equal(t, "a", posts[2].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCorpusRepository_AllSkipsExpiredEntries(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := repository.NewRedisCorpusRepository(client)

	post := similarity.Post{ID: "a", IndexedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)}

	// The second entry vanished between SCAN and MGET.
	mock.ExpectScan(0, "corpus:*", 100).SetVal([]string{"corpus:a", "corpus:gone"}, 0)
	mock.ExpectMGet("corpus:a", "corpus:gone").SetVal([]interface{}{
		string(mustMarshal(t, post)),
		nil,
	})

	posts, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "a", posts[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCorpusRepository_AllEmptyCorpus(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := repository.NewRedisCorpusRepository(client)

	mock.ExpectScan(0, "corpus:*", 100).SetVal([]string{}, 0)

	posts, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)

	assert.NoError(t, mock.ExpectationsWereMet())
}
