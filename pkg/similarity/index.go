package similarity

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quietharbor/sanctum/pkg/embedding"
	"github.com/quietharbor/sanctum/pkg/infra/metrics"
)

const (
	// DefaultTopK bounds search results when the caller passes no limit.
	DefaultTopK = 10

	// DefaultThreshold is the minimum similarity for a match.
	DefaultThreshold = 0.7

	previewRunes = 200
)

// Match is one ranked similarity result.
type Match struct {
	PostID                string   `json:"post_id"`
	Score                 float64  `json:"similarity_score"`
	ContentPreview        string   `json:"content_preview"`
	Topics                []string `json:"topics"`
	HasPositiveResolution bool     `json:"has_positive_resolution"`
	ResponseCount         int      `json:"response_count"`
}

// Filters is the hard pre-filter applied before any scoring. Nil pointer
// fields are ignored; Topics requires a non-empty intersection.
type Filters struct {
	HasPositiveResolution *bool
	Topics                []string
	ModerationApproved    *bool
}

// PostMetadata travels with the content at indexing time.
type PostMetadata struct {
	Topics                []string
	HasPositiveResolution bool
	ResponseCount         int
	ModerationApproved    bool
	EmotionalIntensity    int
}

// Index owns the similarity corpus: it is the only write path and the only
// query path. Embedding happens through the injected Creator so a remote
// model service can replace the local one without touching ranking.
type Index struct {
	creator embedding.Creator
	repo    Repository
	logger  *logrus.Logger
	metrics *metrics.Recorder
}

func NewIndex(creator embedding.Creator, repo Repository, logger *logrus.Logger, recorder *metrics.Recorder) *Index {
	return &Index{
		creator: creator,
		repo:    repo,
		logger:  logger,
		metrics: recorder,
	}
}

// IndexPost embeds content and upserts the corpus entry for postID,
// overwriting any prior entry. On embedding failure nothing is written.
func (i *Index) IndexPost(ctx context.Context, postID, content string, meta PostMetadata) error {
	emb, err := i.creator.Generate(ctx, content)
	if err != nil {
		i.logger.WithError(err).WithField("post_id", postID).Error("failed to embed post")
		return fmt.Errorf("embed post %s: %w", postID, err)
	}

	post := Post{
		ID:                    postID,
		Embedding:             emb.Value,
		Content:               content,
		Topics:                meta.Topics,
		HasPositiveResolution: meta.HasPositiveResolution,
		ResponseCount:         meta.ResponseCount,
		ModerationApproved:    meta.ModerationApproved,
		EmotionalIntensity:    meta.EmotionalIntensity,
		IndexedAt:             time.Now().UTC(),
	}

	if err := i.repo.Upsert(ctx, post); err != nil {
		return fmt.Errorf("store post %s: %w", postID, err)
	}

	i.metrics.ObserveIndexedPost()
	i.logger.WithField("post_id", postID).Debug("indexed post")
	return nil
}

// Search ranks corpus entries against the query content: hard pre-filter,
// cosine similarity against the query embedding, threshold cut, stable
// descending sort (ties keep indexing order), truncation to topK. A failure
// to embed the query returns an empty result set and the error, never a
// silently wrong ranking.
func (i *Index) Search(ctx context.Context, queryContent string, topK int, threshold float64, filters Filters) ([]Match, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryEmbedding, err := i.creator.Generate(ctx, queryContent)
	if err != nil {
		i.metrics.ObserveSearchError()
		return nil, fmt.Errorf("embed query: %w", err)
	}

	posts, err := i.repo.All(ctx)
	if err != nil {
		i.metrics.ObserveSearchError()
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	matches := make([]Match, 0)
	for _, post := range posts {
		if !matchesFilters(post, filters) {
			continue
		}

		score := CosineSimilarity(queryEmbedding.Value, post.Embedding)
		if score < threshold {
			continue
		}

		matches = append(matches, Match{
			PostID:                post.ID,
			Score:                 score,
			ContentPreview:        preview(post.Content),
			Topics:                post.Topics,
			HasPositiveResolution: post.HasPositiveResolution,
			ResponseCount:         post.ResponseCount,
		})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// CosineSimilarity returns dot(a,b)/(|a||b|), and 0.0 when either vector has
// zero norm or the lengths differ. It never raises.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func matchesFilters(post Post, filters Filters) bool {
	if filters.HasPositiveResolution != nil && post.HasPositiveResolution != *filters.HasPositiveResolution {
		return false
	}
	if filters.ModerationApproved != nil && post.ModerationApproved != *filters.ModerationApproved {
		return false
	}
	if len(filters.Topics) > 0 && !intersects(filters.Topics, post.Topics) {
		return false
	}
	return true
}

func intersects(required, actual []string) bool {
	for _, r := range required {
		for _, a := range actual {
			if r == a {
				return true
			}
		}
	}
	return false
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewRunes {
		return content
	}
	return string(runes[:previewRunes])
}
