package moderation

import (
	"context"
	"strings"
)

const (
	toxicityDetectorName = "toxicity"

	// DefaultToxicityThreshold is the score above which a post is flagged
	// high_toxicity and escalated from safe to medium.
	DefaultToxicityThreshold = 0.7

	// toxicityAlertThreshold is the lower advisory cut reported alongside
	// the score.
	toxicityAlertThreshold = 0.5

	perTermWeight = 0.2
)

var defaultToxicKeywords = []string{
	"hate",
	"kill you",
	"deserve to die",
	"worthless",
	"pathetic",
	"loser",
	"stupid",
}

// Scorer is the toxicity boundary a learned model must honor: a score in
// [0,1]. The engine's escalation thresholds apply unchanged whatever produces
// the score.
type Scorer interface {
	Name() string
	Score(ctx context.Context, content string) (ToxicityScore, error)
}

// ToxicityScore is a scorer's full report; only Score feeds escalation.
type ToxicityScore struct {
	Score             float64 `json:"score"`
	TermCount         int     `json:"term_count"`
	ThresholdExceeded bool    `json:"threshold_exceeded"`
}

// KeywordScorer counts toxic keyword occurrences, score = min(count*0.2, 1).
// A linear placeholder for a real classifier.
type KeywordScorer struct {
	keywords []string
}

func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{keywords: defaultToxicKeywords}
}

func (s *KeywordScorer) Name() string { return toxicityDetectorName }

func (s *KeywordScorer) Score(ctx context.Context, content string) (ToxicityScore, error) {
	if err := ctx.Err(); err != nil {
		return ToxicityScore{}, err
	}

	lower := strings.ToLower(content)

	var count int
	for _, keyword := range s.keywords {
		count += strings.Count(lower, keyword)
	}

	score := float64(count) * perTermWeight
	if score > 1.0 {
		score = 1.0
	}

	return ToxicityScore{
		Score:             score,
		TermCount:         count,
		ThresholdExceeded: score > toxicityAlertThreshold,
	}, nil
}
