package moderation

import (
	"context"
	"strings"
)

const harmfulDetectorName = "harmful_content"

var defaultProEDKeywords = []string{
	"pro ana",
	"pro mia",
	"thinspo",
	"bonespo",
}

var defaultEncouragementPhrases = []string{
	"do it",
	"just end it",
	"no one cares",
}

// HarmfulContentDetector matches pro-eating-disorder content and self-harm
// encouragement. A hit raises severity to high only while the verdict is
// still safe, so a crisis hit always wins.
type HarmfulContentDetector struct {
	proED         []string
	encouragement []string
}

func NewHarmfulContentDetector() *HarmfulContentDetector {
	return &HarmfulContentDetector{
		proED:         defaultProEDKeywords,
		encouragement: defaultEncouragementPhrases,
	}
}

func (d *HarmfulContentDetector) Name() string { return harmfulDetectorName }

func (d *HarmfulContentDetector) Detect(ctx context.Context, content string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	lower := strings.ToLower(content)

	var flags []string
	for _, keyword := range d.proED {
		if strings.Contains(lower, keyword) {
			flags = append(flags, "pro_ed:"+keyword)
		}
	}
	for _, phrase := range d.encouragement {
		if strings.Contains(lower, phrase) {
			flags = append(flags, "encourage_harm:"+phrase)
		}
	}

	if len(flags) == 0 {
		return Result{}, nil
	}

	return Result{
		Detected:       true,
		Flags:          flags,
		Severity:       SeverityHigh,
		GatedBySafe:    true,
		Actions:        []string{ActionHoldPost},
		RequiresReview: true,
	}, nil
}
