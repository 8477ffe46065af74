package moderation

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/quietharbor/sanctum/pkg/infra/metrics"
)

// Verdict is the folded outcome of all moderation stages.
type Verdict struct {
	Approved       bool          `json:"approved"`
	Severity       Severity      `json:"severity"`
	Flags          []string      `json:"flags"`
	RequiresReview bool          `json:"requires_review"`
	AutoActions    []string      `json:"auto_actions"`
	CrisisDetected bool          `json:"crisis_detected"`
	Toxicity       ToxicityScore `json:"toxicity"`
	Timestamp      time.Time     `json:"timestamp"`
}

// Engine orchestrates the four moderation stages into one verdict under a
// severity-only-increases policy.
type Engine struct {
	crisis            Detector
	harmful           Detector
	scorer            Scorer
	piiLeak           Detector
	toxicityThreshold float64
	logger            *logrus.Logger
	metrics           *metrics.Recorder
}

func NewEngine(settings Settings, logger *logrus.Logger, recorder *metrics.Recorder) *Engine {
	settings.applyDefaults()
	return &Engine{
		crisis: &CrisisDetector{
			keywords: settings.CrisisKeywords,
			patterns: settings.HarmfulPatterns,
		},
		harmful: &HarmfulContentDetector{
			proED:         settings.ProEDKeywords,
			encouragement: settings.EncouragementPhrases,
		},
		scorer:            &KeywordScorer{keywords: settings.ToxicKeywords},
		piiLeak:           NewPIILeakDetector(),
		toxicityThreshold: *settings.ToxicityThreshold,
		logger:            logger,
		metrics:           recorder,
	}
}

// WithScorer swaps the toxicity scorer, keeping the escalation thresholds.
func (e *Engine) WithScorer(scorer Scorer) *Engine {
	e.scorer = scorer
	return e
}

type stageOutcome struct {
	name   string
	result Result
	err    error
}

// Moderate runs the four detectors on already-anonymized content and folds
// their results. Detectors run concurrently; the fold applies them in fixed
// descending-severity order (crisis, harmful, toxicity, pii), so the
// safe-gated escalations still reduce to an associative max and flag order is
// deterministic. A detector outage yields a fallback escalation (at least
// medium, held for review) instead of failing open.
func (e *Engine) Moderate(ctx context.Context, content, pseudonym string, extra map[string]interface{}) Verdict {
	if len(extra) > 0 {
		e.logger.WithFields(logrus.Fields{
			"pseudonym": pseudonym,
			"context":   extra,
		}).Debug("moderating content")
	}

	outcomes := make([]stageOutcome, 4)
	var toxicity ToxicityScore

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := e.crisis.Detect(gctx, content)
		outcomes[0] = stageOutcome{name: e.crisis.Name(), result: r, err: err}
		return nil
	})
	g.Go(func() error {
		r, err := e.harmful.Detect(gctx, content)
		outcomes[1] = stageOutcome{name: e.harmful.Name(), result: r, err: err}
		return nil
	})
	g.Go(func() error {
		score, err := e.scorer.Score(gctx, content)
		outcome := stageOutcome{name: e.scorer.Name(), err: err}
		if err == nil {
			toxicity = score
			if score.Score > e.toxicityThreshold {
				outcome.result = Result{
					Detected:       true,
					Flags:          []string{"high_toxicity"},
					Severity:       SeverityMedium,
					GatedBySafe:    true,
					RequiresReview: true,
				}
			}
		}
		outcomes[2] = outcome
		return nil
	})
	g.Go(func() error {
		r, err := e.piiLeak.Detect(gctx, content)
		outcomes[3] = stageOutcome{name: e.piiLeak.Name(), result: r, err: err}
		return nil
	})
	_ = g.Wait()

	verdict := Verdict{
		Approved:    true,
		Severity:    SeveritySafe,
		Flags:       []string{},
		AutoActions: []string{},
		Toxicity:    toxicity,
		Timestamp:   time.Now().UTC(),
	}

	for _, outcome := range outcomes {
		if outcome.err != nil {
			e.logger.WithError(outcome.err).
				WithField("detector", outcome.name).
				Error("moderation stage unavailable, holding for manual review")
			verdict.Severity = verdict.Severity.Max(SeverityMedium)
			verdict.RequiresReview = true
			verdict.Flags = appendUnique(verdict.Flags, FlagModerationIncomplete)
			continue
		}

		r := outcome.result
		if !r.Detected {
			continue
		}

		verdict.Flags = append(verdict.Flags, r.Flags...)
		if r.Crisis {
			verdict.CrisisDetected = true
		}
		if r.GatedBySafe && verdict.Severity != SeveritySafe {
			continue
		}
		verdict.Severity = verdict.Severity.Max(r.Severity)
		verdict.AutoActions = append(verdict.AutoActions, r.Actions...)
		if r.RequiresReview {
			verdict.RequiresReview = true
		}
	}

	verdict.Approved = verdict.Severity < SeverityHigh

	e.metrics.ObserveVerdict(verdict.Severity.String(), verdict.CrisisDetected)

	if !verdict.Approved {
		e.logger.WithFields(logrus.Fields{
			"pseudonym": pseudonym,
			"severity":  verdict.Severity.String(),
			"flags":     verdict.Flags,
		}).Warn("content held by moderation")
	}

	return verdict
}

func appendUnique(flags []string, flag string) []string {
	for _, f := range flags {
		if f == flag {
			return flags
		}
	}
	return append(flags, flag)
}
