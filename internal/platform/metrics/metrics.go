package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	RecordsCommitted     prometheus.Counter
	ReplaysBlocked       prometheus.Counter
	ConsentGrants        prometheus.Counter
	ConsentRevocations   prometheus.Counter
	AdminTransfers       prometheus.Counter
	PrincipalsRegistered *prometheus.CounterVec
	OperationsDenied     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		RecordsCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "healthledger_records_committed_total",
			Help: "Total number of records committed to the ledger",
		}),
		ReplaysBlocked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "healthledger_replays_blocked_total",
			Help: "Total number of record writes rejected by replay protection",
		}),
		ConsentGrants: promauto.NewCounter(prometheus.CounterOpts{
			Name: "healthledger_consent_grants_total",
			Help: "Total number of consent grants",
		}),
		ConsentRevocations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "healthledger_consent_revocations_total",
			Help: "Total number of consent revocations",
		}),
		AdminTransfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "healthledger_admin_transfers_total",
			Help: "Total number of administrator transfers",
		}),
		PrincipalsRegistered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "healthledger_principals_registered_total",
			Help: "Total number of principals registered, by role",
		}, []string{"role"}),
		OperationsDenied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "healthledger_operations_denied_total",
			Help: "Total number of denied operations, by error code",
		}, []string{"code"}),
	}
}

// IncDenied counts a denied operation by its domain error code.
func (m *Metrics) IncDenied(code string) {
	m.OperationsDenied.WithLabelValues(code).Inc()
}
