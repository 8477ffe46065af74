package moderation

import (
	"context"
	"strings"
)

const crisisDetectorName = "crisis"

var defaultCrisisKeywords = []string{
	"suicide",
	"kill myself",
	"end it all",
	"want to die",
	"no reason to live",
	"better off dead",
	"self harm",
	"cut myself",
	"overdose",
}

var defaultHarmfulPatterns = []string{
	"how to kill",
	"suicide method",
	"ways to die",
	"pro ana",
	"pro mia",
	"thinspo",
}

// CrisisDetector matches self-harm ideation and method-seeking phrases. A hit
// is terminal for severity: the verdict is forced to critical and nothing
// downstream can exceed it.
type CrisisDetector struct {
	keywords []string
	patterns []string
}

func NewCrisisDetector() *CrisisDetector {
	return &CrisisDetector{
		keywords: defaultCrisisKeywords,
		patterns: defaultHarmfulPatterns,
	}
}

func (d *CrisisDetector) Name() string { return crisisDetectorName }

func (d *CrisisDetector) Detect(ctx context.Context, content string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	lower := strings.ToLower(content)

	var flags []string
	for _, keyword := range d.keywords {
		if strings.Contains(lower, keyword) {
			flags = append(flags, "crisis:"+keyword)
		}
	}
	for _, pattern := range d.patterns {
		if strings.Contains(lower, pattern) {
			flags = append(flags, "crisis:pattern:"+pattern)
		}
	}

	if len(flags) == 0 {
		return Result{}, nil
	}

	return Result{
		Detected:       true,
		Flags:          flags,
		Severity:       SeverityCritical,
		Actions:        []string{ActionHoldPost, ActionAlertModerators, ActionShowCrisisResources},
		RequiresReview: true,
		Crisis:         true,
	}, nil
}
