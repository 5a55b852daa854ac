package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for relay request counters.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Service owns the process-wide relay metrics.
type Service struct {
	registry      *prometheus.Registry
	relayRequests *prometheus.CounterVec
}

// NewService creates a metrics service with its own registry.
func NewService() *Service {
	registry := prometheus.NewRegistry()

	relayRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_requests_total",
		Help: "Relay requests by operation and outcome.",
	}, []string{"operation", "outcome"})

	registry.MustRegister(relayRequests)

	return &Service{
		registry:      registry,
		relayRequests: relayRequests,
	}
}

// ObserveRelayRequest counts one relay request outcome.
func (s *Service) ObserveRelayRequest(operation string, success bool) {
	outcome := OutcomeFailure
	if success {
		outcome = OutcomeSuccess
	}

	s.relayRequests.WithLabelValues(operation, outcome).Inc()
}

// Handler exposes the registry in Prometheus text format.
func (s *Service) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}
