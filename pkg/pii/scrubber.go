package pii

// Scrub replaces every supported PII pattern in text with its literal tag,
// in the fixed entity order. It is a pure function and idempotent: the tags
// contain no digits or address characters, so a second pass finds nothing new.
func Scrub(text string) string {
	for _, entity := range entityOrder {
		text = entityPatterns[entity].ReplaceAllString(text, entityMasks[entity])
	}
	return text
}

// Detect reports which of the given entity families still match text. With no
// entities given it checks the full family. The moderation engine uses this as
// a post-scrub safety net, not as the scrubbing mechanism.
func Detect(text string, entities ...Entity) []Entity {
	if len(entities) == 0 {
		entities = entityOrder
	}
	var found []Entity
	for _, entity := range entities {
		pattern, ok := entityPatterns[entity]
		if !ok {
			continue
		}
		if pattern.MatchString(text) {
			found = append(found, entity)
		}
	}
	return found
}

// VerificationResult reports residual PII in already-anonymized content.
type VerificationResult struct {
	IsSafe   bool           `json:"is_safe"`
	FoundPII map[Entity]int `json:"found_pii"`
	Scrubbed bool           `json:"scrubbed"`
}

// Verify re-runs the PII pattern family against the anonymized text and
// counts residual matches. It is a post-condition check on the scrub output.
func Verify(original, anonymized string) VerificationResult {
	found := make(map[Entity]int)
	for _, entity := range entityOrder {
		if matches := entityPatterns[entity].FindAllString(anonymized, -1); len(matches) > 0 {
			found[entity] = len(matches)
		}
	}
	return VerificationResult{
		IsSafe:   len(found) == 0,
		FoundPII: found,
		Scrubbed: original != anonymized,
	}
}
