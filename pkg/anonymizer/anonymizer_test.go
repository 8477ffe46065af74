package anonymizer

import (
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietharbor/sanctum/pkg/sentiment"
)

func newTestAnonymizer() *Anonymizer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New("test-secret", sentiment.NewKeywordAnalyzer(), logger)
}

func TestAnonymize_StripsIdentity(t *testing.T) {
	a := newTestAnonymizer()

	record, err := a.Anonymize("user-42", "jane@example.com",
		"My name is Jane, reach me at jane@example.com or 555-123-4567",
		nil)
	require.NoError(t, err)

	assert.NotContains(t, record.Content, "jane@example.com")
	assert.NotContains(t, record.Content, "555-123-4567")
	assert.NotContains(t, record.Content, "Jane")
	assert.Contains(t, record.Content, "[NAME REMOVED]")
	assert.Contains(t, record.Content, "[EMAIL]")
	assert.Contains(t, record.Content, "[PHONE]")
	assert.True(t, record.Scrubbed)
	assert.NotZero(t, record.OriginalLength)
}

func TestAnonymize_CleanTextNotScrubbed(t *testing.T) {
	a := newTestAnonymizer()

	record, err := a.Anonymize("user-42", "jane@example.com",
		"today was hard but I managed", nil)
	require.NoError(t, err)

	assert.False(t, record.Scrubbed)
	assert.Equal(t, "today was hard but I managed", record.Content)
}

func TestPseudonym_Format(t *testing.T) {
	a := newTestAnonymizer()

	p, err := a.Pseudonym("user-42", "jane@example.com")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^anon_[0-9a-f]{16}$`), p)
}

func TestPseudonym_FreshSaltPerCall(t *testing.T) {
	a := newTestAnonymizer()

	first, err := a.Pseudonym("user-42", "jane@example.com")
	require.NoError(t, err)
	second, err := a.Pseudonym("user-42", "jane@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestFuzzTimestamp_Bounds(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 37, 12, 0, time.UTC)
	floored := ts.Truncate(fuzzInterval)

	for i := 0; i < 200; i++ {
		fuzzed, err := fuzzTimestamp(ts)
		require.NoError(t, err)

		diff := fuzzed.Sub(floored)
		assert.GreaterOrEqual(t, diff, -5*time.Minute)
		assert.LessOrEqual(t, diff, 5*time.Minute)
		assert.Zero(t, fuzzed.Second())
		assert.Zero(t, fuzzed.Nanosecond())
	}
}

func TestAnonymize_EventTimeFuzzed(t *testing.T) {
	a := newTestAnonymizer()
	fixed := time.Date(2026, 3, 14, 9, 37, 12, 0, time.UTC)
	a.now = func() time.Time { return fixed }

	record, err := a.Anonymize("user-42", "", "quiet evening", nil)
	require.NoError(t, err)

	floored := fixed.Truncate(fuzzInterval)
	diff := record.EventTime.Sub(floored)
	assert.GreaterOrEqual(t, diff, -5*time.Minute)
	assert.LessOrEqual(t, diff, 5*time.Minute)
}

func TestExtractSafeContext(t *testing.T) {
	a := newTestAnonymizer()

	record, err := a.Anonymize("user-42", "", "Is there any hope left?", map[string]interface{}{
		"topics":              []string{"grief"},
		"emotional_intensity": 7,
		"content_type":        "question",
		"email":               "leak@example.com",
		"home_address":        "12 Elm St",
	})
	require.NoError(t, err)

	ctx := record.Context
	assert.Equal(t, 5, ctx.WordCount)
	assert.True(t, ctx.HasQuestion)
	assert.Equal(t, sentiment.Positive, ctx.SentimentHint)
	assert.Equal(t, []string{"grief"}, ctx.Topics)
	assert.Equal(t, 7, ctx.EmotionalIntensity)
	assert.Equal(t, "question", ctx.ContentType)
}

func TestExtractSafeContext_NoMetadata(t *testing.T) {
	a := newTestAnonymizer()

	record, err := a.Anonymize("user-42", "", "short note", nil)
	require.NoError(t, err)

	assert.Empty(t, record.Context.Topics)
	assert.Zero(t, record.Context.EmotionalIntensity)
	assert.Equal(t, 2, record.Context.WordCount)
	assert.Equal(t, 10, record.Context.CharacterCount)
	assert.False(t, record.Context.HasQuestion)
}
