package moderation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrisisDetector(t *testing.T) {
	d := NewCrisisDetector()

	tests := []struct {
		name     string
		content  string
		detected bool
		flag     string
	}{
		{"ideation keyword", "sometimes I want to die", true, "crisis:want to die"},
		{"method seeking", "searching for a suicide method", true, "crisis:suicide"},
		{"pattern", "asking how to kill the pain forever", true, "crisis:pattern:how to kill"},
		{"case insensitive", "I Want To DIE", true, "crisis:want to die"},
		{"clean", "rough week but hanging in there", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := d.Detect(context.Background(), tt.content)
			require.NoError(t, err)

			assert.Equal(t, tt.detected, result.Detected)
			if tt.detected {
				assert.Contains(t, result.Flags, tt.flag)
				assert.Equal(t, SeverityCritical, result.Severity)
				assert.True(t, result.Crisis)
				assert.True(t, result.RequiresReview)
			}
		})
	}
}

func TestHarmfulContentDetector(t *testing.T) {
	d := NewHarmfulContentDetector()

	result, err := d.Detect(context.Background(), "just end it already, no one cares")
	require.NoError(t, err)

	assert.True(t, result.Detected)
	assert.Contains(t, result.Flags, "encourage_harm:just end it")
	assert.Contains(t, result.Flags, "encourage_harm:no one cares")
	assert.Equal(t, SeverityHigh, result.Severity)
	assert.True(t, result.GatedBySafe)
	assert.Equal(t, []string{ActionHoldPost}, result.Actions)

	clean, err := d.Detect(context.Background(), "everyone here cares about you")
	require.NoError(t, err)
	assert.False(t, clean.Detected)
}

func TestPIILeakDetector(t *testing.T) {
	d := NewPIILeakDetector()

	result, err := d.Detect(context.Background(), "my ssn is 123-45-6789")
	require.NoError(t, err)
	assert.True(t, result.Detected)
	assert.Equal(t, []string{"pii_detected"}, result.Flags)
	assert.Equal(t, SeveritySafe, result.Severity)
	assert.True(t, result.RequiresReview)

	scrubbed, err := d.Detect(context.Background(), "my ssn is [SSN], zip [ZIP]")
	require.NoError(t, err)
	assert.False(t, scrubbed.Detected)
}

func TestKeywordScorer(t *testing.T) {
	s := NewKeywordScorer()

	tests := []struct {
		name     string
		content  string
		score    float64
		count    int
		exceeded bool
	}{
		{"clean", "thanks for listening", 0.0, 0, false},
		{"single term", "feeling worthless tonight", 0.2, 1, false},
		{"three terms", "worthless pathetic loser", 0.6, 3, true},
		{"clamped at one", "hate hate hate hate hate hate", 1.0, 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := s.Score(context.Background(), tt.content)
			require.NoError(t, err)

			assert.InDelta(t, tt.score, score.Score, 1e-9)
			assert.Equal(t, tt.count, score.TermCount)
			assert.Equal(t, tt.exceeded, score.ThresholdExceeded)
		})
	}
}

func TestDetect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCrisisDetector().Detect(ctx, "anything")
	assert.Error(t, err)

	_, err = NewKeywordScorer().Score(ctx, "anything")
	assert.Error(t, err)
}
