// Package metrics records ticker activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"news-ticker/internal/domain/model"
	"news-ticker/internal/domain/neterr"
	"news-ticker/internal/domain/ports"
)

const namespace = "newsticker"

// Presenter observes presenter signals and turns them into metrics.
type Presenter struct {
	cycles    prometheus.Counter
	loading   prometheus.Gauge
	displayed prometheus.Gauge
	revealed  prometheus.Counter
	failures  *prometheus.CounterVec
}

var _ ports.Presenter = (*Presenter)(nil)

// NewPresenter registers the ticker metrics with reg.
func NewPresenter(reg prometheus.Registerer) *Presenter {
	factory := promauto.With(reg)
	return &Presenter{
		cycles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_started_total",
			Help:      "Total number of fetch cycles that started loading",
		}),
		loading: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loading",
			Help:      "Whether a fetch cycle is loading (1) or idle (0)",
		}),
		displayed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "displayed_articles",
			Help:      "Number of articles in the display buffer",
		}),
		revealed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_revealed_total",
			Help:      "Total number of articles revealed by the ticker",
		}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Total number of failed cycles by category",
		}, []string{"category"}),
	}
}

// Loading tracks the loading gauge and counts started cycles.
func (p *Presenter) Loading(active bool) {
	if active {
		p.cycles.Inc()
		p.loading.Set(1)
		return
	}
	p.loading.Set(0)
}

// Publish tracks the buffer size.
func (p *Presenter) Publish(articles []model.Article) {
	p.displayed.Set(float64(len(articles)))
}

// ScrollToTop follows every revealed article, so it drives the reveal count.
func (p *Presenter) ScrollToTop() {
	p.revealed.Inc()
}

// Message counts failures by category.
func (p *Presenter) Message(category neterr.Category, _ string) {
	p.failures.WithLabelValues(category.String()).Inc()
}
