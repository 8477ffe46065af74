package types

// RawSubmission is the transient input handed to the pipeline by the routing
// layer. It is never persisted: caller identity and email are consumed by the
// anonymization step and discarded.
type RawSubmission struct {
	CallerIdentity string   `json:"caller_identity"`
	CallerEmail    string   `json:"caller_email"`
	Text           string   `json:"text"`
	TopicTags      []string `json:"topic_tags,omitempty"`
	// Intensity is a self-reported 1-10 scale. Zero means unset and defaults
	// to 5 during validation.
	Intensity   int    `json:"intensity,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}
