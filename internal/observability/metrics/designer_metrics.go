package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// DesignerMetrics counts template persistence and render activity.
type DesignerMetrics struct {
	templatesSaved   *prometheus.CounterVec
	templatesLoaded  *prometheus.CounterVec
	rendersTotal     *prometheus.CounterVec
	unresolvedTokens prometheus.Counter
	renderDuration   prometheus.Histogram
}

var (
	designerMetricsOnce sync.Once
	designerMetrics     *DesignerMetrics
)

// Designer returns the process-wide designer metrics, registering them on
// first use.
func Designer() *DesignerMetrics {
	return DesignerWithConfig(Config{})
}

func DesignerWithConfig(cfg Config) *DesignerMetrics {
	designerMetricsOnce.Do(func() {
		designerMetrics = newDesignerMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return designerMetrics
}

func ResetDesignerMetricsForTest() {
	designerMetricsOnce = sync.Once{}
	designerMetrics = nil
}

func newDesignerMetrics(registerer prometheus.Registerer, cfg Config) *DesignerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	constLabels := prometheus.Labels{
		"service": cfg.serviceName(),
		"env":     cfg.environment(),
	}

	templatesSaved := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "belegdesigner_templates_saved_total",
			Help:        "Template save operations by result.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // inserted | updated | error
	)
	templatesLoaded := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "belegdesigner_templates_loaded_total",
			Help:        "Template load operations by result.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // ok | degraded | error
	)
	rendersTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "belegdesigner_renders_total",
			Help:        "Placeholder substitution runs by result.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // clean | warnings
	)
	unresolvedTokens := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:        "belegdesigner_unresolved_tokens_total",
			Help:        "Placeholder tokens that resolved to their literal text.",
			ConstLabels: constLabels,
		},
	)
	renderDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:        "belegdesigner_render_duration_seconds",
			Help:        "Wall time of one placeholder substitution run.",
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			ConstLabels: constLabels,
		},
	)

	registerer.MustRegister(templatesSaved, templatesLoaded, rendersTotal, unresolvedTokens, renderDuration)

	return &DesignerMetrics{
		templatesSaved:   templatesSaved,
		templatesLoaded:  templatesLoaded,
		rendersTotal:     rendersTotal,
		unresolvedTokens: unresolvedTokens,
		renderDuration:   renderDuration,
	}
}

func (m *DesignerMetrics) TemplateSaved(result string) {
	if m == nil {
		return
	}
	m.templatesSaved.WithLabelValues(result).Inc()
}

func (m *DesignerMetrics) TemplateLoaded(result string) {
	if m == nil {
		return
	}
	m.templatesLoaded.WithLabelValues(result).Inc()
}

func (m *DesignerMetrics) RenderFinished(seconds float64, warnings int) {
	if m == nil {
		return
	}
	result := "clean"
	if warnings > 0 {
		result = "warnings"
	}
	m.rendersTotal.WithLabelValues(result).Inc()
	m.renderDuration.Observe(seconds)
}

func (m *DesignerMetrics) UnresolvedTokens(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.unresolvedTokens.Add(float64(n))
}
