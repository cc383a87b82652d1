package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// SimMetrics instruments the simulation runtime.
type SimMetrics struct {
	ticks            prometheus.Counter
	views            prometheus.Counter
	revenueMicros    prometheus.Counter
	watchdogResets   *prometheus.CounterVec
	gatewayFallbacks *prometheus.CounterVec
	rejected         *prometheus.CounterVec
	videosPublished  prometheus.Counter
	subscribers      prometheus.Gauge
	day              prometheus.Gauge
	level            prometheus.Gauge
}

var (
	simOnce     sync.Once
	simRegistry *SimMetrics
)

// Sim returns the process-wide instruments, registering them on first use.
func Sim() *SimMetrics {
	simOnce.Do(func() {
		simRegistry = &SimMetrics{
			ticks: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "streamersim_ticks_total",
				Help: "Simulation clock ticks processed.",
			}),
			views: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "streamersim_views_total",
				Help: "Views accrued across all published videos.",
			}),
			revenueMicros: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "streamersim_revenue_micros_total",
				Help: "View revenue credited, in micro-dollars.",
			}),
			watchdogResets: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "streamersim_watchdog_resets_total",
				Help: "Activities force-reset to idle by the watchdog.",
			}, []string{"activity"}),
			gatewayFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "streamersim_gateway_fallbacks_total",
				Help: "Content gateway calls served by the offline fallback.",
			}, []string{"call"}),
			rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "streamersim_transitions_rejected_total",
				Help: "Transitions rejected on a precondition, by reason.",
			}, []string{"reason"}),
			videosPublished: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "streamersim_videos_published_total",
				Help: "Videos published.",
			}),
			subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "streamersim_subscribers",
				Help: "Current subscriber count.",
			}),
			day: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "streamersim_day",
				Help: "Current in-game day.",
			}),
			level: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "streamersim_level",
				Help: "Current creator level.",
			}),
		}
		prometheus.MustRegister(
			simRegistry.ticks,
			simRegistry.views,
			simRegistry.revenueMicros,
			simRegistry.watchdogResets,
			simRegistry.gatewayFallbacks,
			simRegistry.rejected,
			simRegistry.videosPublished,
			simRegistry.subscribers,
			simRegistry.day,
			simRegistry.level,
		)
	})
	return simRegistry
}

func (m *SimMetrics) ObserveTick(views int64, revenueMicros int64) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	if views > 0 {
		m.views.Add(float64(views))
	}
	if revenueMicros > 0 {
		m.revenueMicros.Add(float64(revenueMicros))
	}
}

func (m *SimMetrics) IncWatchdogReset(activity string) {
	if m == nil {
		return
	}
	if activity == "" {
		activity = "unknown"
	}
	m.watchdogResets.WithLabelValues(activity).Inc()
}

func (m *SimMetrics) IncGatewayFallback(call string) {
	if m == nil {
		return
	}
	if call == "" {
		call = "unknown"
	}
	m.gatewayFallbacks.WithLabelValues(call).Inc()
}

func (m *SimMetrics) IncRejected(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *SimMetrics) IncPublished() {
	if m == nil {
		return
	}
	m.videosPublished.Inc()
}

// SetCareer mirrors the headline career numbers into gauges.
func (m *SimMetrics) SetCareer(subscribers float64, day, level int) {
	if m == nil {
		return
	}
	m.subscribers.Set(subscribers)
	m.day.Set(float64(day))
	m.level.Set(float64(level))
}
