package pii

import "regexp"

var (
	namePattern     = regexp.MustCompile(`(?i)\b(?:my name is|i'm|i am)\s+[A-Z][a-z]+\b`)
	locationPattern = regexp.MustCompile(`(?i)\b(?:i live in|from)\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?\b`)
	urlPattern      = regexp.MustCompile(`https?://\S+`)
	mentionPattern  = regexp.MustCompile(`@\w+`)
	hashtagPattern  = regexp.MustCompile(`#\w+`)
)

// RedactIdentifyingPhrases masks identifying information the pattern scrub
// cannot catch: self-introductions, location disclosures, URLs and social
// handles. Names and locations are matched by phrase shape, not NER, so this
// runs after Scrub as a secondary pass.
func RedactIdentifyingPhrases(text string) string {
	text = namePattern.ReplaceAllString(text, "[NAME REMOVED]")
	text = locationPattern.ReplaceAllString(text, "[LOCATION REMOVED]")
	text = urlPattern.ReplaceAllString(text, "[LINK REMOVED]")
	text = mentionPattern.ReplaceAllString(text, "[MENTION]")
	text = hashtagPattern.ReplaceAllString(text, "[HASHTAG]")
	return text
}
