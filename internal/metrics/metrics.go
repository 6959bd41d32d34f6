// Package metrics exposes Prometheus collectors for the RPC surface and settlements.
package metrics

import (
	"context"
	"errors"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors registered by New.
type Metrics struct {
	RPCRequests    *prometheus.CounterVec
	RPCDuration    *prometheus.HistogramVec
	Settlements    prometheus.Counter
	RecordsWritten *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "messbook",
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "messbook",
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		Settlements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "messbook",
			Name:      "settlements_computed_total",
			Help:      "Settlement reports computed.",
		}),
		RecordsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "messbook",
			Name:      "records_written_total",
			Help:      "Ledger writes by record kind and operation.",
		}, []string{"kind", "op"}),
	}
	reg.MustRegister(m.RPCRequests, m.RPCDuration, m.Settlements, m.RecordsWritten)
	return m
}

// SettlementComputed counts one computed report. Safe on a nil receiver.
func (m *Metrics) SettlementComputed() {
	if m == nil {
		return
	}
	m.Settlements.Inc()
}

// RecordWritten counts a ledger write. Safe on a nil receiver.
func (m *Metrics) RecordWritten(kind, op string) {
	if m == nil {
		return
	}
	m.RecordsWritten.WithLabelValues(kind, op).Inc()
}

// Interceptor records call counts and latency for every unary RPC.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			procedure := req.Spec().Procedure
			m.RPCDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			m.RPCRequests.WithLabelValues(procedure, codeOf(err)).Inc()
			return resp, err
		}
	}
}

func codeOf(err error) string {
	if err == nil {
		return "ok"
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Code().String()
	}
	return connect.CodeUnknown.String()
}
