package service

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the portal's business counters. A nil *Metrics records nothing.
type Metrics struct {
	reviewsSubmitted *prometheus.CounterVec
	recomputes       *prometheus.CounterVec
	listingCache     *prometheus.CounterVec
}

// NewMetrics creates and registers the service counters.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reviewsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vendor_portal_reviews_submitted_total",
			Help: "Reviews accepted, by rating.",
		}, []string{"rating"}),
		recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vendor_portal_rating_recomputes_total",
			Help: "Vendor aggregate recomputations, by result.",
		}, []string{"result"}),
		listingCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vendor_portal_listing_cache_requests_total",
			Help: "Vendor listing cache lookups, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.reviewsSubmitted, m.recomputes, m.listingCache)
	return m
}

func (m *Metrics) reviewSubmitted(rating int) {
	if m == nil {
		return
	}
	m.reviewsSubmitted.WithLabelValues(strconv.Itoa(rating)).Inc()
}

func (m *Metrics) recompute(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.recomputes.WithLabelValues(result).Inc()
}

func (m *Metrics) cacheLookup(result string) {
	if m == nil {
		return
	}
	m.listingCache.WithLabelValues(result).Inc()
}
