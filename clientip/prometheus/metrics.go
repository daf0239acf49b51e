// Package prometheus provides a Prometheus-backed implementation of
// clientip.Metrics.
package prometheus

import (
	"errors"
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Metrics is a Prometheus-backed implementation of clientip.Metrics.
type Metrics struct {
	resolutionTotal *prom.CounterVec
	eventsTotal     *prom.CounterVec
}

// New creates Metrics and registers its collectors on
// prom.DefaultRegisterer.
func New() (*Metrics, error) {
	return NewWithRegisterer(prom.DefaultRegisterer)
}

// NewWithRegisterer creates Metrics and registers its collectors on the
// given registerer.
//
// If registerer is nil, prom.DefaultRegisterer is used. If the metrics are
// already registered, existing compatible collectors are reused.
func NewWithRegisterer(registerer prom.Registerer) (*Metrics, error) {
	if registerer == nil {
		registerer = prom.DefaultRegisterer
	}

	resolutionTotalCollector := prom.NewCounterVec(
		prom.CounterOpts{
			Name: "ipapi_resolution_total",
			Help: "Total number of client IP resolution attempts by source (x_forwarded_for, x_real_ip, remote_addr) and result (success, miss).",
		},
		[]string{"source", "result"},
	)
	eventsTotalCollector := prom.NewCounterVec(
		prom.CounterOpts{
			Name: "ipapi_resolution_events_total",
			Help: "Noteworthy conditions observed during client IP resolution, labeled by event.",
		},
		[]string{"event"},
	)

	resolutionTotal, err := registerCounterVec(registerer, resolutionTotalCollector, "ipapi_resolution_total")
	if err != nil {
		return nil, err
	}

	eventsTotal, err := registerCounterVec(registerer, eventsTotalCollector, "ipapi_resolution_events_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		resolutionTotal: resolutionTotal,
		eventsTotal:     eventsTotal,
	}, nil
}

func registerCounterVec(registerer prom.Registerer, collector *prom.CounterVec, metricName string) (*prom.CounterVec, error) {
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prom.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(*prom.CounterVec)
			if ok {
				return existing, nil
			}
			return nil, fmt.Errorf("metric %q already registered with incompatible collector type %T", metricName, alreadyRegistered.ExistingCollector)
		}

		return nil, fmt.Errorf("register metric %q: %w", metricName, err)
	}

	return collector, nil
}

// RecordResolution increments ipapi_resolution_total with result="success"
// for the provided source.
func (m *Metrics) RecordResolution(source string) {
	m.resolutionTotal.WithLabelValues(source, "success").Inc()
}

// RecordMiss increments ipapi_resolution_total with result="miss" for the
// provided source.
func (m *Metrics) RecordMiss(source string) {
	m.resolutionTotal.WithLabelValues(source, "miss").Inc()
}

// RecordEvent increments ipapi_resolution_events_total for the provided
// event label.
func (m *Metrics) RecordEvent(event string) {
	m.eventsTotal.WithLabelValues(event).Inc()
}
