package sentiment

import "github.com/jonreiter/govader"

const compoundThreshold = 0.20

// VaderAnalyzer scores text with the VADER lexicon. It is a drop-in
// replacement for the keyword analyzer where a lexicon-backed hint is wanted.
type VaderAnalyzer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (a *VaderAnalyzer) Analyze(text string) Label {
	score := a.analyzer.PolarityScores(text)
	switch {
	case score.Compound >= compoundThreshold:
		return Positive
	case score.Compound <= -compoundThreshold:
		return Negative
	default:
		return Neutral
	}
}
