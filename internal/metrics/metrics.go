package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the business and HTTP collectors. A nil *Metrics is a no-op.
type Metrics struct {
	bookings     *prometheus.CounterVec
	conflicts    *prometheus.CounterVec
	settlements  *prometheus.CounterVec
	credits      prometheus.Counter
	reminders    *prometheus.CounterVec
	gateway      *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barberclub",
			Subsystem: "scheduling",
			Name:      "bookings_created_total",
			Help:      "Appointments and placeholders created",
		}, []string{"origin"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barberclub",
			Subsystem: "scheduling",
			Name:      "booking_conflicts_total",
			Help:      "Bookings rejected because the slot was taken",
		}, []string{"stage"}),
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barberclub",
			Subsystem: "settlement",
			Name:      "settlements_total",
			Help:      "Settlement attempts by outcome",
		}, []string{"outcome"}),
		credits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "barberclub",
			Subsystem: "club",
			Name:      "credits_redeemed_total",
			Help:      "Subscription credits consumed by settlements",
		}),
		reminders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barberclub",
			Subsystem: "reminders",
			Name:      "sent_total",
			Help:      "Reminder deliveries by status",
		}, []string{"status"}),
		gateway: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barberclub",
			Subsystem: "club",
			Name:      "gateway_calls_total",
			Help:      "Payment gateway calls by operation and status",
		}, []string{"op", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "barberclub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.bookings,
		m.conflicts,
		m.settlements,
		m.credits,
		m.reminders,
		m.gateway,
		m.httpDuration,
	)
	return m
}

func (m *Metrics) BookingCreated(origin string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(origin).Inc()
}

// BookingConflict: stage is "check" for the in-code re-check, "constraint" for the database.
func (m *Metrics) BookingConflict(stage string) {
	if m == nil {
		return
	}
	m.conflicts.WithLabelValues(stage).Inc()
}

func (m *Metrics) Settlement(outcome string) {
	if m == nil {
		return
	}
	m.settlements.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CreditRedeemed() {
	if m == nil {
		return
	}
	m.credits.Inc()
}

func (m *Metrics) Reminder(status string) {
	if m == nil {
		return
	}
	m.reminders.WithLabelValues(status).Inc()
}

func (m *Metrics) GatewayCall(op string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.gateway.WithLabelValues(op, status).Inc()
}

func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, status).Observe(seconds)
}
