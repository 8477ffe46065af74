package moderation

import (
	"encoding/json"
	"fmt"
)

// Severity is the ordinal safety tier driving review SLA and auto actions.
type Severity int

const (
	SeveritySafe Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeveritySafe:     "safe",
	SeverityLow:      "low",
	SeverityMedium:   "medium",
	SeverityHigh:     "high",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Max returns the higher tier. The verdict fold is an associative max, so
// detector ordering cannot change the final severity.
func (s Severity) Max(other Severity) Severity {
	if other > s {
		return other
	}
	return s
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for severity, n := range severityNames {
		if n == name {
			*s = severity
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", name)
}
