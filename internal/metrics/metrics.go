package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// MetricsCollector records ledger activity. Amounts are in BTC.
type MetricsCollector interface {
	RecordUserRegistered()
	RecordWalletCreated()
	RecordTransfer(amount, fee float64)
	RecordError(operation, code string)
	RecordRateLookup(source, result string)
	RecordBreakerState(name, state string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordUserRegistered()             {}
func (NoopMetricsCollector) RecordWalletCreated()              {}
func (NoopMetricsCollector) RecordTransfer(float64, float64)   {}
func (NoopMetricsCollector) RecordError(string, string)        {}
func (NoopMetricsCollector) RecordRateLookup(string, string)   {}
func (NoopMetricsCollector) RecordBreakerState(string, string) {}

var breakerStates = []string{"closed", "half-open", "open"}

// Prometheus exports ledger metrics on its own registry.
type Prometheus struct {
	Registry *prometheus.Registry

	usersTotal     prometheus.Counter
	walletsTotal   prometheus.Counter
	transfersTotal prometheus.Counter
	transferVolume prometheus.Counter
	feesTotal      prometheus.Counter
	errorsTotal    *prometheus.CounterVec
	rateLookups    *prometheus.CounterVec
	breakerState   *prometheus.GaugeVec
}

func NewPrometheus() *Prometheus {
	p := &Prometheus{
		Registry: prometheus.NewRegistry(),
		usersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "btcledger",
			Name:      "users_registered_total",
			Help:      "Total number of registered users.",
		}),
		walletsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "btcledger",
			Name:      "wallets_created_total",
			Help:      "Total number of created wallets.",
		}),
		transfersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "btcledger",
			Name:      "transfers_total",
			Help:      "Total number of committed transfers.",
		}),
		transferVolume: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "btcledger",
			Name:      "transfer_volume_btc_total",
			Help:      "Sum of transferred amounts in BTC.",
		}),
		feesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "btcledger",
			Name:      "fees_btc_total",
			Help:      "Sum of collected fees in BTC.",
		}),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "btcledger",
				Name:      "errors_total",
				Help:      "Total number of failed operations.",
			},
			[]string{"operation", "code"},
		),
		rateLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "btcledger",
				Name:      "rate_lookups_total",
				Help:      "Total number of BTC/USD rate lookups.",
			},
			[]string{"source", "result"},
		),
		breakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "btcledger",
				Name:      "circuitbreaker_state",
				Help:      "Circuit breaker state (0/1).",
			},
			[]string{"name", "state"}, // state: closed/half-open/open
		),
	}

	p.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.usersTotal,
		p.walletsTotal,
		p.transfersTotal,
		p.transferVolume,
		p.feesTotal,
		p.errorsTotal,
		p.rateLookups,
		p.breakerState,
	)
	return p
}

func (p *Prometheus) RecordUserRegistered() { p.usersTotal.Inc() }

func (p *Prometheus) RecordWalletCreated() { p.walletsTotal.Inc() }

func (p *Prometheus) RecordTransfer(amount, fee float64) {
	p.transfersTotal.Inc()
	p.transferVolume.Add(amount)
	p.feesTotal.Add(fee)
}

func (p *Prometheus) RecordError(operation, code string) {
	p.errorsTotal.WithLabelValues(operation, code).Inc()
}

func (p *Prometheus) RecordRateLookup(source, result string) {
	p.rateLookups.WithLabelValues(source, result).Inc()
}

func (p *Prometheus) RecordBreakerState(name, state string) {
	for _, s := range breakerStates {
		v := 0.0
		if s == state {
			v = 1
		}
		p.breakerState.WithLabelValues(name, s).Set(v)
	}
}
