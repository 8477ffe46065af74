package moderation

import "context"

// Auto actions a verdict can require from the caller.
const (
	ActionHoldPost            = "hold_post"
	ActionAlertModerators     = "alert_moderators"
	ActionShowCrisisResources = "show_crisis_resources"
)

// FlagModerationIncomplete marks a verdict produced while one or more
// detectors were unavailable. Such verdicts never fail open.
const FlagModerationIncomplete = "moderation_incomplete"

// Result is one detector's contribution to a verdict.
type Result struct {
	Detected bool
	// Flags are always merged into the verdict when Detected, even if the
	// escalation below is suppressed.
	Flags []string
	// Severity is the tier this hit escalates the verdict to, folded with a
	// max that only ever raises.
	Severity Severity
	// GatedBySafe suppresses the escalation (severity, actions, review) when
	// the verdict has already left the safe tier. Flags still apply.
	GatedBySafe    bool
	Actions        []string
	RequiresReview bool
	Crisis         bool
}

// Detector is the capability boundary for one moderation stage. A keyword
// table and a learned model are interchangeable behind it; the engine's
// escalation policy does not change with the implementation.
type Detector interface {
	Name() string
	Detect(ctx context.Context, content string) (Result, error)
}
