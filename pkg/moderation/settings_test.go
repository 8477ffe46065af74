package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSettings(t *testing.T) {
	settings, err := DecodeSettings(map[string]interface{}{
		"toxicity_threshold": 0.5,
		"crisis_keywords":    []string{"custom phrase"},
	})
	require.NoError(t, err)

	require.NotNil(t, settings.ToxicityThreshold)
	assert.Equal(t, 0.5, *settings.ToxicityThreshold)
	assert.Equal(t, []string{"custom phrase"}, settings.CrisisKeywords)
	assert.Empty(t, settings.ToxicKeywords)
}

func TestDecodeSettings_InvalidThreshold(t *testing.T) {
	_, err := DecodeSettings(map[string]interface{}{"toxicity_threshold": 1.5})
	assert.Error(t, err)

	_, err = DecodeSettings(map[string]interface{}{"toxicity_threshold": -0.1})
	assert.Error(t, err)
}

func TestDecodeSettings_ExplicitZeroThreshold(t *testing.T) {
	settings, err := DecodeSettings(map[string]interface{}{"toxicity_threshold": 0.0})
	require.NoError(t, err)

	require.NotNil(t, settings.ToxicityThreshold)
	assert.Equal(t, 0.0, *settings.ToxicityThreshold)

	// A set zero must survive defaulting, only nil falls back.
	settings.applyDefaults()
	assert.Equal(t, 0.0, *settings.ToxicityThreshold)
}

func TestSettings_ApplyDefaults(t *testing.T) {
	var s Settings
	s.applyDefaults()

	require.NotNil(t, s.ToxicityThreshold)
	assert.Equal(t, float64(DefaultToxicityThreshold), *s.ToxicityThreshold)
	assert.NotEmpty(t, s.CrisisKeywords)
	assert.NotEmpty(t, s.HarmfulPatterns)
	assert.NotEmpty(t, s.ProEDKeywords)
	assert.NotEmpty(t, s.EncouragementPhrases)
	assert.NotEmpty(t, s.ToxicKeywords)
}
