package moderation

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Settings tunes the keyword tables and thresholds of the engine. Unset
// fields fall back to the built-in defaults; an explicit threshold of 0 is
// honored, not defaulted.
type Settings struct {
	ToxicityThreshold    *float64 `mapstructure:"toxicity_threshold"`
	CrisisKeywords       []string `mapstructure:"crisis_keywords"`
	HarmfulPatterns      []string `mapstructure:"harmful_patterns"`
	ProEDKeywords        []string `mapstructure:"pro_ed_keywords"`
	EncouragementPhrases []string `mapstructure:"encouragement_phrases"`
	ToxicKeywords        []string `mapstructure:"toxic_keywords"`
}

// DecodeSettings validates and decodes a free-form settings map, e.g. the
// moderation block of a config file.
func DecodeSettings(raw map[string]interface{}) (Settings, error) {
	var settings Settings
	if err := mapstructure.Decode(raw, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to decode moderation settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s Settings) Validate() error {
	if s.ToxicityThreshold != nil && (*s.ToxicityThreshold < 0 || *s.ToxicityThreshold > 1) {
		return fmt.Errorf("toxicity_threshold must be within [0,1], got %v", *s.ToxicityThreshold)
	}
	return nil
}

func (s *Settings) applyDefaults() {
	if s.ToxicityThreshold == nil {
		threshold := DefaultToxicityThreshold
		s.ToxicityThreshold = &threshold
	}
	if len(s.CrisisKeywords) == 0 {
		s.CrisisKeywords = defaultCrisisKeywords
	}
	if len(s.HarmfulPatterns) == 0 {
		s.HarmfulPatterns = defaultHarmfulPatterns
	}
	if len(s.ProEDKeywords) == 0 {
		s.ProEDKeywords = defaultProEDKeywords
	}
	if len(s.EncouragementPhrases) == 0 {
		s.EncouragementPhrases = defaultEncouragementPhrases
	}
	if len(s.ToxicKeywords) == 0 {
		s.ToxicKeywords = defaultToxicKeywords
	}
}
