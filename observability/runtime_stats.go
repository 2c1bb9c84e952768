package observability

import (
	"sync"
	"time"

	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	once       sync.Once
	runtimeErr error
)

// StartRuntimeStats publishes the Go runtime metrics (goroutines, heap,
// GC pauses) next to the tree metrics. Only the first call starts them,
// later calls return the first result. A nil provider means the global one.
func StartRuntimeStats(mp metric.MeterProvider) error {
	once.Do(func() {
		if mp == nil {
			mp = otel.GetMeterProvider()
		}
		runtimeErr = otelruntime.Start(
			otelruntime.WithMeterProvider(mp),
			otelruntime.WithMinimumReadMemStatsInterval(time.Second),
		)
	})
	return runtimeErr
}
