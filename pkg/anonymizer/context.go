package anonymizer

import (
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"

	"github.com/quietharbor/sanctum/pkg/sentiment"
)

// SafeContext is the derived, identity-free context stored with a record.
type SafeContext struct {
	WordCount          int             `json:"word_count"`
	CharacterCount     int             `json:"character_count"`
	HasQuestion        bool            `json:"has_question"`
	SentimentHint      sentiment.Label `json:"sentiment_hint"`
	Topics             []string        `json:"topics,omitempty"`
	EmotionalIntensity int             `json:"emotional_intensity,omitempty"`
	ContentType        string          `json:"content_type,omitempty"`
}

// safeMetadata is the metadata allow-list. Fields absent here are dropped,
// never passed through by default.
type safeMetadata struct {
	Topics             []string `mapstructure:"topics"`
	EmotionalIntensity int      `mapstructure:"emotional_intensity"`
	ContentType        string   `mapstructure:"content_type"`
}

func (a *Anonymizer) extractSafeContext(content string, metadata map[string]interface{}) SafeContext {
	ctx := SafeContext{
		WordCount:      len(strings.Fields(content)),
		CharacterCount: utf8.RuneCountInString(content),
		HasQuestion:    strings.Contains(content, "?"),
		SentimentHint:  a.sentiment.Analyze(content),
	}

	if len(metadata) == 0 {
		return ctx
	}

	var safe safeMetadata
	if err := mapstructure.Decode(metadata, &safe); err != nil {
		a.logger.WithError(err).Warn("dropping malformed submission metadata")
		return ctx
	}

	ctx.Topics = safe.Topics
	ctx.EmotionalIntensity = safe.EmotionalIntensity
	ctx.ContentType = safe.ContentType
	return ctx
}
