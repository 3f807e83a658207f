package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "iban"

// OutcomeValid labels a check that passed; failures use iban.Reason codes.
const OutcomeValid = "valid"

// Recorder counts checks by country and outcome and times them. A nil
// *Recorder records nothing.
type Recorder struct {
	checks   *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewRecorder registers the check collectors on reg. Registering twice on
// the same registry reuses the collectors that are already there.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	checks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checks_total",
		Help:      "IBAN checks by country code and outcome.",
	}, []string{"country", "outcome"})
	if err := registerCollector(reg, checks, func(existing prometheus.Collector) bool {
		c, ok := existing.(*prometheus.CounterVec)
		if ok {
			checks = c
		}
		return ok
	}); err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "check_duration_seconds",
		Help:      "Time spent parsing and validating one IBAN.",
		Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
	})
	if err := registerCollector(reg, duration, func(existing prometheus.Collector) bool {
		h, ok := existing.(prometheus.Histogram)
		if ok {
			duration = h
		}
		return ok
	}); err != nil {
		return nil, err
	}

	return &Recorder{checks: checks, duration: duration}, nil
}

// Observe records one check.
func (r *Recorder) Observe(country, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	if country == "" {
		country = "none"
	}
	r.checks.WithLabelValues(country, outcome).Inc()
	r.duration.Observe(d.Seconds())
}

func registerCollector(reg prometheus.Registerer, c prometheus.Collector, adopt func(prometheus.Collector) bool) error {
	err := reg.Register(c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) && adopt(are.ExistingCollector) {
		return nil
	}
	return err
}
