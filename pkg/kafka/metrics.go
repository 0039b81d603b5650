package kafka

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts producer outcomes per topic and event type.
type Metrics struct {
	published *prometheus.CounterVec
}

// NewMetrics creates and registers the producer collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kafka_producer_messages_total",
			Help: "Total number of Kafka publish attempts by result",
		}, []string{"topic", "event_type", "result"}),
	}
	reg.MustRegister(m.published)
	return m
}

func (m *Metrics) observe(topic, eventType string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.published.WithLabelValues(topic, eventType, result).Inc()
}
