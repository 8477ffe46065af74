package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the pipeline's Prometheus instruments. A nil *Recorder is
// valid and records nothing, so metrics stay optional in library use.
type Recorder struct {
	verdicts     *prometheus.CounterVec
	crisisAlerts prometheus.Counter
	scrubEvents  prometheus.Counter
	indexedPosts prometheus.Counter
	searchErrors prometheus.Counter
}

// NewRecorder registers the pipeline collectors on reg. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Recorder{
		verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sanctum_moderation_verdicts_total",
			Help: "Moderation verdicts by severity tier.",
		}, []string{"severity"}),
		crisisAlerts: factory.NewCounter(prometheus.CounterOpts{
			Name: "sanctum_crisis_detections_total",
			Help: "Posts that triggered crisis detection.",
		}),
		scrubEvents: factory.NewCounter(prometheus.CounterOpts{
			Name: "sanctum_pii_scrub_events_total",
			Help: "Submissions whose content was altered by PII scrubbing.",
		}),
		indexedPosts: factory.NewCounter(prometheus.CounterOpts{
			Name: "sanctum_indexed_posts_total",
			Help: "Posts written to the similarity corpus.",
		}),
		searchErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "sanctum_search_errors_total",
			Help: "Similarity searches that failed on the embedding backend.",
		}),
	}
}

func (r *Recorder) ObserveVerdict(severity string, crisis bool) {
	if r == nil {
		return
	}
	r.verdicts.WithLabelValues(severity).Inc()
	if crisis {
		r.crisisAlerts.Inc()
	}
}

func (r *Recorder) ObserveScrub() {
	if r == nil {
		return
	}
	r.scrubEvents.Inc()
}

func (r *Recorder) ObserveIndexedPost() {
	if r == nil {
		return
	}
	r.indexedPosts.Inc()
}

func (r *Recorder) ObserveSearchError() {
	if r == nil {
		return
	}
	r.searchErrors.Inc()
}
