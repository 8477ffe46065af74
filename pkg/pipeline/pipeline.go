package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/quietharbor/sanctum/pkg/anonymizer"
	"github.com/quietharbor/sanctum/pkg/infra/metrics"
	"github.com/quietharbor/sanctum/pkg/moderation"
	"github.com/quietharbor/sanctum/pkg/similarity"
	"github.com/quietharbor/sanctum/pkg/types"
)

const (
	// MaxTextLength bounds submission size before any processing happens.
	MaxTextLength = 10000

	// DefaultIntensity applies when a submission carries no intensity.
	DefaultIntensity = 5

	maxIntensity = 10
)

// Outcome is the typed result of one pipeline run. The record and verdict are
// always populated once validation passes; Review is set when the post was
// held for human review, and Indexed reports whether the post entered the
// similarity corpus.
type Outcome struct {
	PostID  string                 `json:"post_id"`
	Record  anonymizer.Record      `json:"record"`
	Verdict moderation.Verdict     `json:"verdict"`
	Indexed bool                   `json:"indexed"`
	Review  *moderation.Assignment `json:"review,omitempty"`
}

// Pipeline is the owned-state composition of the three stages: anonymize,
// moderate, index. Construct one instance and share it; there is no hidden
// process-wide state. The final index write is the only externally visible
// mutation, so an abandoned call leaves nothing behind.
type Pipeline struct {
	anonymizer *anonymizer.Anonymizer
	engine     *moderation.Engine
	index      *similarity.Index
	logger     *logrus.Logger
	metrics    *metrics.Recorder
}

func New(
	anon *anonymizer.Anonymizer,
	engine *moderation.Engine,
	index *similarity.Index,
	logger *logrus.Logger,
	recorder *metrics.Recorder,
) *Pipeline {
	return &Pipeline{
		anonymizer: anon,
		engine:     engine,
		index:      index,
		logger:     logger,
		metrics:    recorder,
	}
}

// Process runs a raw submission through the full pipeline. Errors satisfy
// errors.Is against types.ErrValidation or types.ErrBackendUnavailable; an
// Outcome is returned alongside a backend error when the verdict was produced
// but indexing failed.
func (p *Pipeline) Process(ctx context.Context, sub types.RawSubmission) (*Outcome, error) {
	intensity, err := validate(sub)
	if err != nil {
		return nil, err
	}

	metadata := map[string]interface{}{
		"topics":              sub.TopicTags,
		"emotional_intensity": intensity,
		"content_type":        sub.ContentType,
	}

	record, err := p.anonymizer.Anonymize(sub.CallerIdentity, sub.CallerEmail, sub.Text, metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: anonymization: %v", types.ErrBackendUnavailable, err)
	}
	if record.Scrubbed {
		p.metrics.ObserveScrub()
	}

	verdict := p.engine.Moderate(ctx, record.Content, record.Pseudonym, nil)

	outcome := &Outcome{
		PostID:  uuid.NewString(),
		Record:  record,
		Verdict: verdict,
	}

	if verdict.RequiresReview {
		assignment := moderation.QueueForReview(outcome.PostID, verdict.Severity, verdict.Flags)
		outcome.Review = &assignment
	}

	if !verdict.Approved {
		p.logger.WithFields(logrus.Fields{
			"post_id":  outcome.PostID,
			"severity": verdict.Severity.String(),
		}).Info("post held, not indexed")
		return outcome, nil
	}

	meta := similarity.PostMetadata{
		Topics:             sub.TopicTags,
		ModerationApproved: true,
		EmotionalIntensity: intensity,
	}
	if err := p.index.IndexPost(ctx, outcome.PostID, record.Content, meta); err != nil {
		return outcome, fmt.Errorf("%w: indexing: %v", types.ErrBackendUnavailable, err)
	}
	outcome.Indexed = true

	return outcome, nil
}

// FindSimilar ranks previously indexed posts against query content.
func (p *Pipeline) FindSimilar(ctx context.Context, queryContent string, topK int, threshold float64, filters similarity.Filters) ([]similarity.Match, error) {
	if strings.TrimSpace(queryContent) == "" {
		return nil, fmt.Errorf("%w: query content is empty", types.ErrValidation)
	}

	matches, err := p.index.Search(ctx, queryContent, topK, threshold, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", types.ErrBackendUnavailable, err)
	}
	return matches, nil
}

func validate(sub types.RawSubmission) (int, error) {
	if strings.TrimSpace(sub.Text) == "" {
		return 0, fmt.Errorf("%w: text is empty", types.ErrValidation)
	}
	if len(sub.Text) > MaxTextLength {
		return 0, fmt.Errorf("%w: text exceeds %d bytes", types.ErrValidation, MaxTextLength)
	}
	if sub.CallerIdentity == "" {
		return 0, fmt.Errorf("%w: caller identity is required", types.ErrValidation)
	}

	intensity := sub.Intensity
	if intensity == 0 {
		intensity = DefaultIntensity
	}
	if intensity < 1 || intensity > maxIntensity {
		return 0, fmt.Errorf("%w: intensity %d outside [1,%d]", types.ErrValidation, sub.Intensity, maxIntensity)
	}
	return intensity, nil
}
