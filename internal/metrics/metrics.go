// Package metrics counts storefront activity for the /metrics endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Recorder struct {
	registry        *prometheus.Registry
	CartLinesAdded  prometheus.Counter
	OrdersCreated   prometheus.Counter
	OrdersCompleted prometheus.Counter
	PointsAwarded   prometheus.Counter
	RewardsRedeemed *prometheus.CounterVec
	Searches        prometheus.Counter
}

// New registers the counters on a private registry so tests can create as
// many recorders as they like.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		CartLinesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "codecup_cart_lines_added_total",
			Help: "Add-to-cart operations that succeeded.",
		}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "codecup_orders_created_total",
			Help: "Orders placed at checkout.",
		}),
		OrdersCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "codecup_orders_completed_total",
			Help: "Orders moved to completed.",
		}),
		PointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "codecup_points_awarded_total",
			Help: "Loyalty points awarded for completed orders.",
		}),
		RewardsRedeemed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "codecup_rewards_redeemed_total",
			Help: "Rewards redeemed, by kind.",
		}, []string{"kind"}),
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "codecup_searches_total",
			Help: "Catalog searches with a non-empty query.",
		}),
	}
	r.registry.MustRegister(
		r.CartLinesAdded,
		r.OrdersCreated,
		r.OrdersCompleted,
		r.PointsAwarded,
		r.RewardsRedeemed,
		r.Searches,
	)
	return r
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
