package anonymizer

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quietharbor/sanctum/pkg/pii"
	"github.com/quietharbor/sanctum/pkg/sentiment"
)

const (
	pseudonymPrefix = "anon_"
	pseudonymHexLen = 16
	saltBytes       = 32

	fuzzInterval  = 15 * time.Minute
	maxJitter     = 5 // minutes, either direction
	jitterSamples = 2*maxJitter + 1
)

// Record is the anonymized form of a submission, immutable once produced.
// It carries no caller identity beyond the pseudonym.
type Record struct {
	Pseudonym      string      `json:"pseudonym"`
	Content        string      `json:"content"`
	EventTime      time.Time   `json:"event_time"`
	Context        SafeContext `json:"context"`
	OriginalLength int         `json:"original_length"`
	Scrubbed       bool        `json:"scrubbed"`
}

// Anonymizer strips identity from submissions before anything is persisted.
type Anonymizer struct {
	secret    string
	sentiment sentiment.Analyzer
	logger    *logrus.Logger
	now       func() time.Time
}

func New(secret string, analyzer sentiment.Analyzer, logger *logrus.Logger) *Anonymizer {
	if analyzer == nil {
		analyzer = sentiment.NewKeywordAnalyzer()
	}
	return &Anonymizer{
		secret:    secret,
		sentiment: analyzer,
		logger:    logger,
		now:       time.Now,
	}
}

// Anonymize produces the persistable form of a submission: pseudonym, scrubbed
// content, fuzzed event time and allow-listed safe context. Caller identity and
// email are not retained beyond this call.
func (a *Anonymizer) Anonymize(callerIdentity, callerEmail, text string, metadata map[string]interface{}) (Record, error) {
	pseudonym, err := a.Pseudonym(callerIdentity, callerEmail)
	if err != nil {
		return Record{}, err
	}

	clean := pii.Scrub(text)
	clean = pii.RedactIdentifyingPhrases(clean)

	eventTime, err := fuzzTimestamp(a.now().UTC())
	if err != nil {
		return Record{}, err
	}

	record := Record{
		Pseudonym:      pseudonym,
		Content:        clean,
		EventTime:      eventTime,
		Context:        a.extractSafeContext(clean, metadata),
		OriginalLength: len(text),
		Scrubbed:       text != clean,
	}

	if verification := pii.Verify(text, clean); !verification.IsSafe {
		// Scrubber miss: the moderation engine's PII-leak stage will flag the
		// post for review, but it should never reach this point silently.
		a.logger.WithField("pii_types", verification.FoundPII).
			Warn("residual PII detected after anonymization")
	}

	return record, nil
}

// Pseudonym derives anon_<hex> from caller identity, email, the server secret
// and fresh randomness. The fresh salt makes every call return a different
// value: pseudonyms are issued once per account at creation time and the
// stored value reused thereafter, never re-derived per post.
func (a *Anonymizer) Pseudonym(callerIdentity, callerEmail string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("pseudonym salt: %w", err)
	}

	sum := sha256.Sum256([]byte(callerIdentity + callerEmail + a.secret + hex.EncodeToString(salt)))
	return pseudonymPrefix + hex.EncodeToString(sum[:])[:pseudonymHexLen], nil
}

// Verify re-checks anonymized content for residual PII as a post-condition.
func (a *Anonymizer) Verify(original, anonymized string) pii.VerificationResult {
	return pii.Verify(original, anonymized)
}

// fuzzTimestamp floors the event time to the 15-minute boundary and adds a
// uniform offset in [-5,+5] minutes from crypto/rand, yielding k-anonymity
// over the 15-minute cohort without an exactly correlatable timestamp.
func fuzzTimestamp(ts time.Time) (time.Time, error) {
	floored := ts.Truncate(fuzzInterval)

	n, err := rand.Int(rand.Reader, big.NewInt(jitterSamples))
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp jitter: %w", err)
	}
	offset := time.Duration(n.Int64()-maxJitter) * time.Minute

	return floored.Add(offset), nil
}
