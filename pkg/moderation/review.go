package moderation

import "time"

const (
	QueueCrisis   = "crisis"
	QueueStandard = "standard"

	defaultSLAHours = 72
)

var severitySLAHours = map[Severity]int{
	SeverityCritical: 1,
	SeverityHigh:     4,
	SeverityMedium:   24,
	SeverityLow:      72,
}

// Assignment routes a held post to a human review queue with an SLA derived
// from its severity tier.
type Assignment struct {
	PostID   string    `json:"post_id"`
	Severity Severity  `json:"severity"`
	SLAHours int       `json:"sla_hours"`
	Queue    string    `json:"queue"`
	Flags    []string  `json:"flags"`
	QueuedAt time.Time `json:"queued_at"`
}

// QueueForReview produces the review-queue assignment for a flagged post.
// Critical posts go to the crisis queue with a one-hour SLA.
func QueueForReview(postID string, severity Severity, flags []string) Assignment {
	sla, ok := severitySLAHours[severity]
	if !ok {
		sla = defaultSLAHours
	}

	queue := QueueStandard
	if severity == SeverityCritical {
		queue = QueueCrisis
	}

	return Assignment{
		PostID:   postID,
		Severity: severity,
		SLAHours: sla,
		Queue:    queue,
		Flags:    flags,
		QueuedAt: time.Now().UTC(),
	}
}
