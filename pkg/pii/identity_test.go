package pii

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactIdentifyingPhrases(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"self introduction", "Hi, my name is Alice and I need help", "Hi, [NAME REMOVED] and I need help"},
		{"contraction", "i'm Bob by the way", "[NAME REMOVED] by the way"},
		{"location", "I live in Portland Oregon and feel alone", "[LOCATION REMOVED] and feel alone"},
		{"url", "see https://example.com/post for context", "see [LINK REMOVED] for context"},
		{"mention", "talked to @someone about it", "talked to [MENTION] about it"},
		{"hashtag", "posted under #anxiety yesterday", "posted under [HASHTAG] yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, RedactIdentifyingPhrases(tt.input))
		})
	}
}

func TestRedactIdentifyingPhrases_Idempotent(t *testing.T) {
	input := "my name is Carol, I live in Denver, see https://x.com @c #tag"
	once := RedactIdentifyingPhrases(input)
	assert.Equal(t, once, RedactIdentifyingPhrases(once))
}
