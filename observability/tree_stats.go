package observability

import (
	"context"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/rbsteps/lib/infra"
	"github.com/benz9527/rbsteps/lib/tree"
)

const meterName = "github.com/benz9527/rbsteps/observability"

var _ tree.StepSink[int] = (*treeStats[int])(nil)

// treeStats counts the requests and steps of one tree. Like the tree
// itself it must not be shared by concurrent writers.
type treeStats[K infra.OrderedKey] struct {
	ctx       context.Context
	ops       metric.Int64Counter
	steps     metric.Int64Counter
	rotations metric.Int64Counter
	opSteps   metric.Int64Histogram
	size      metric.Int64ObservableGauge
	base      []attribute.KeyValue
	pending   int64
}

type TreeStatsOption func(*treeStatsCfg)

type treeStatsCfg struct {
	name   string
	sizeFn func() int64
}

// WithTreeStatsName adds a "tree" attribute to every instrument, so
// several trees can share a meter.
func WithTreeStatsName(name string) TreeStatsOption {
	return func(cfg *treeStatsCfg) {
		cfg.name = name
	}
}

// WithTreeStatsSize observes the tree size, usually the tree Len method.
func WithTreeStatsSize(sizeFn func() int64) TreeStatsOption {
	return func(cfg *treeStatsCfg) {
		cfg.sizeFn = sizeFn
	}
}

// NewTreeStats builds the instruments on meter, the global meter
// provider is used if meter is nil.
func NewTreeStats[K infra.OrderedKey](meter metric.Meter, opts ...TreeStatsOption) tree.StepSink[K] {
	if meter == nil {
		meter = otel.Meter(meterName)
	}
	cfg := &treeStatsCfg{}
	for _, o := range opts {
		if o != nil {
			o(cfg)
		}
	}

	stats := &treeStats[K]{
		ctx: context.Background(),
		ops: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.ops",
			metric.WithDescription(`Requests by operation and outcome.`),
		)),
		steps: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.steps",
			metric.WithDescription(`Recorded steps by kind.`),
		)),
		rotations: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"rbtree.rotations",
			metric.WithDescription(`Rotations by direction.`),
		)),
		opSteps: lo.Must[metric.Int64Histogram](meter.Int64Histogram(
			"rbtree.op.steps",
			metric.WithDescription(`Steps recorded by one request.`),
			metric.WithExplicitBucketBoundaries(1, 2, 4, 8, 16, 32, 64, 128),
		)),
	}
	if len(cfg.name) > 0 {
		stats.base = []attribute.KeyValue{attribute.String("tree", cfg.name)}
	}
	if cfg.sizeFn != nil {
		sizeOpt := stats.with()
		stats.size = lo.Must[metric.Int64ObservableGauge](meter.Int64ObservableGauge(
			"rbtree.size",
			metric.WithDescription(`Number of keys in the tree.`),
			metric.WithInt64Callback(func(_ context.Context, ob metric.Int64Observer) error {
				ob.Observe(cfg.sizeFn(), sizeOpt)
				return nil
			}),
		))
	}
	return stats
}

func (stats *treeStats[K]) Begin(tree.RBOp, K) {
	stats.pending = 0
}

func (stats *treeStats[K]) Record(step tree.Step[K]) {
	stats.pending++
	stats.steps.Add(stats.ctx, 1, stats.with(attribute.String("kind", step.Kind.String())))
	switch step.Kind {
	case tree.StepRotateLeft:
		stats.rotations.Add(stats.ctx, 1, stats.with(attribute.String("direction", "left")))
	case tree.StepRotateRight:
		stats.rotations.Add(stats.ctx, 1, stats.with(attribute.String("direction", "right")))
	default:
	}
}

func (stats *treeStats[K]) End(op tree.RBOp, _ K, outcome tree.Outcome) {
	opAttr := attribute.String("op", op.String())
	stats.opSteps.Record(stats.ctx, stats.pending, stats.with(opAttr))
	stats.ops.Add(stats.ctx, 1, stats.with(opAttr, attribute.String("outcome", outcome.String())))
	stats.pending = 0
}

func (stats *treeStats[K]) with(kvs ...attribute.KeyValue) metric.MeasurementOption {
	attrs := make([]attribute.KeyValue, 0, len(stats.base)+len(kvs))
	attrs = append(attrs, stats.base...)
	attrs = append(attrs, kvs...)
	return metric.WithAttributes(attrs...)
}
