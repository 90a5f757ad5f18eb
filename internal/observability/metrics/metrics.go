package metrics

import "github.com/prometheus/client_golang/prometheus"

// Save outcome labels for the settings_saves_total counter.
const (
	SaveResultSuccess    = "success"
	SaveResultRolledBack = "rolled_back"
	SaveResultKept       = "kept_ambiguous"
	SaveResultSwallowed  = "auth_redirect"
)

// Metrics captures engine health signals.
type Metrics struct {
	SettingsSaves      *prometheus.CounterVec
	PreviewFetches     prometheus.Counter
	PreviewStaleDrops  prometheus.Counter
	PreviewFailures    prometheus.Counter
	DefaultStatusFlips prometheus.Counter
	RefreshRuns        prometheus.Counter
	RefreshFailures    *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SettingsSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fosse_settings_saves_total",
			Help: "Role-setting persistence attempts by outcome.",
		}, []string{"result"}),
		PreviewFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fosse_preview_fetches_total",
			Help: "Preview pages requested from the contact query service.",
		}),
		PreviewStaleDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fosse_preview_stale_drops_total",
			Help: "Preview responses discarded because a newer fetch was issued.",
		}),
		PreviewFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fosse_preview_failures_total",
			Help: "Preview fetches that failed and cleared the cache.",
		}),
		DefaultStatusFlips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fosse_default_status_flips_total",
			Help: "Completed moves of the pool membership flag.",
		}),
		RefreshRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fosse_refresh_runs_total",
			Help: "Background refresh sweeps started.",
		}),
		RefreshFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fosse_refresh_failures_total",
			Help: "Background refresh jobs that returned an error.",
		}, []string{"job"}),
	}
	reg.MustRegister(
		m.SettingsSaves,
		m.PreviewFetches,
		m.PreviewStaleDrops,
		m.PreviewFailures,
		m.DefaultStatusFlips,
		m.RefreshRuns,
		m.RefreshFailures,
	)
	return m
}

// NewNop returns metrics bound to a throwaway registry, for tests.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// Provide registers the application metrics on the default registry.
func Provide() *Metrics {
	return New(prometheus.DefaultRegisterer)
}
