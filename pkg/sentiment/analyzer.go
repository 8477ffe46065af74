package sentiment

import "strings"

// Label is the coarse sentiment hint stored in a post's safe context.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Analyzer is the classifier boundary. The keyword implementation below and a
// learned model are interchangeable behind it; the anonymizer only consumes
// the label.
type Analyzer interface {
	Analyze(text string) Label
}

// KeywordAnalyzer labels text by keyword-set majority vote. It is the default
// placeholder for an ML model.
type KeywordAnalyzer struct {
	positive []string
	negative []string
}

func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{
		positive: []string{"happy", "good", "great", "better", "hope", "joy", "love"},
		negative: []string{"sad", "bad", "worst", "hate", "angry", "depressed", "anxious"},
	}
}

// Analyze counts positive and negative keyword hits; ties are neutral.
func (a *KeywordAnalyzer) Analyze(text string) Label {
	lower := strings.ToLower(text)

	var positiveCount, negativeCount int
	for _, word := range a.positive {
		if strings.Contains(lower, word) {
			positiveCount++
		}
	}
	for _, word := range a.negative {
		if strings.Contains(lower, word) {
			negativeCount++
		}
	}

	switch {
	case positiveCount > negativeCount:
		return Positive
	case negativeCount > positiveCount:
		return Negative
	default:
		return Neutral
	}
}
