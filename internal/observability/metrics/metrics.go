package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics exposes counters for the booking wizard.
type BookingMetrics struct {
	sessionsTotal     *prometheus.CounterVec
	submissionsTotal  *prometheus.CounterVec
	confirmerFailures prometheus.Counter
	quoteAmount       prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		sessionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "timetravel",
			Subsystem: "booking",
			Name:      "sessions_total",
			Help:      "Booking sessions started, by destination",
		}, []string{"destination"}),
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "timetravel",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Booking submissions by outcome",
		}, []string{"outcome"}),
		confirmerFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "timetravel",
			Subsystem: "booking",
			Name:      "confirmer_failures_total",
			Help:      "Confirmation notifications that failed",
		}),
		quoteAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "timetravel",
			Subsystem: "booking",
			Name:      "confirmed_amount_eur",
			Help:      "Price of confirmed bookings",
			Buckets:   []float64{1000, 2500, 5000, 10000, 20000, 40000, 60000},
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sessionsTotal, m.submissionsTotal, m.confirmerFailures, m.quoteAmount)
	return m
}

func (m *BookingMetrics) ObserveSessionStarted(destinationID string) {
	if m == nil {
		return
	}
	m.sessionsTotal.WithLabelValues(destinationID).Inc()
}

// ObserveSubmission records a submission; amount is only used when confirmed.
func (m *BookingMetrics) ObserveSubmission(confirmed bool, amount int64) {
	if m == nil {
		return
	}
	if !confirmed {
		m.submissionsTotal.WithLabelValues("rejected").Inc()
		return
	}
	m.submissionsTotal.WithLabelValues("confirmed").Inc()
	m.quoteAmount.Observe(float64(amount))
}

func (m *BookingMetrics) ObserveConfirmerFailure() {
	if m == nil {
		return
	}
	m.confirmerFailures.Inc()
}

// AdvisorMetrics exposes counters/histograms for advisor replies.
type AdvisorMetrics struct {
	repliesTotal  *prometheus.CounterVec
	remoteLatency *prometheus.HistogramVec
}

func NewAdvisorMetrics(reg prometheus.Registerer) *AdvisorMetrics {
	m := &AdvisorMetrics{
		repliesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "timetravel",
			Subsystem: "advisor",
			Name:      "replies_total",
			Help:      "Advisor replies by mode and outcome",
		}, []string{"mode", "outcome"}),
		remoteLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "timetravel",
			Subsystem: "advisor",
			Name:      "remote_latency_seconds",
			Help:      "Latency of remote completion calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider", "success"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.repliesTotal, m.remoteLatency)
	return m
}

func (m *AdvisorMetrics) ObserveReply(mode, outcome string) {
	if m == nil {
		return
	}
	m.repliesTotal.WithLabelValues(mode, outcome).Inc()
}

func (m *AdvisorMetrics) ObserveRemoteLatency(provider string, success bool, seconds float64) {
	if m == nil {
		return
	}
	m.remoteLatency.WithLabelValues(provider, strconv.FormatBool(success)).Observe(seconds)
}
