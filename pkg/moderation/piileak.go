package moderation

import (
	"context"

	"github.com/quietharbor/sanctum/pkg/pii"
)

const piiLeakDetectorName = "pii_leak"

// PIILeakDetector re-scans already-scrubbed content for residual email, phone
// and SSN patterns. It is a safety net against scrubber misses: a hit flags
// the post for review but never changes severity.
type PIILeakDetector struct{}

func NewPIILeakDetector() *PIILeakDetector { return &PIILeakDetector{} }

func (d *PIILeakDetector) Name() string { return piiLeakDetectorName }

func (d *PIILeakDetector) Detect(ctx context.Context, content string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	found := pii.Detect(content, pii.Email, pii.Phone, pii.SSN)
	if len(found) == 0 {
		return Result{}, nil
	}

	return Result{
		Detected:       true,
		Flags:          []string{"pii_detected"},
		Severity:       SeveritySafe,
		RequiresReview: true,
	}, nil
}
