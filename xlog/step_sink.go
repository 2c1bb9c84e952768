package xlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/rbsteps/lib/infra"
	"github.com/benz9527/rbsteps/lib/tree"
)

var _ tree.StepSink[int] = (*stepSink[int])(nil)

// stepSink writes every tree request and step as one log entry.
type stepSink[K infra.OrderedKey] struct {
	logger    XLogger
	stepLvl   zapcore.Level
	snapshots bool
}

type StepSinkOption func(*stepSinkCfg)

type stepSinkCfg struct {
	stepLvl   zapcore.Level
	snapshots bool
}

// WithStepSinkLevel sets the level of the per step entries, Debug by default.
// Requests are always bracketed at Debug.
func WithStepSinkLevel(lvl logLevel) StepSinkOption {
	return func(cfg *stepSinkCfg) {
		cfg.stepLvl = lvl.zapLevel()
	}
}

// WithStepSinkSnapshot adds the rendered tree snapshot to each step entry.
func WithStepSinkSnapshot() StepSinkOption {
	return func(cfg *stepSinkCfg) {
		cfg.snapshots = true
	}
}

func NewStepSink[K infra.OrderedKey](logger XLogger, opts ...StepSinkOption) tree.StepSink[K] {
	if logger == nil {
		panic( /* debug assertion */ "[XLogger] step sink without logger")
	}
	cfg := &stepSinkCfg{stepLvl: zapcore.DebugLevel}
	for _, o := range opts {
		if o != nil {
			o(cfg)
		}
	}
	return &stepSink[K]{
		logger:    logger.Named("rbtree"),
		stepLvl:   cfg.stepLvl,
		snapshots: cfg.snapshots,
	}
}

func (s *stepSink[K]) Begin(op tree.RBOp, key K) {
	s.logger.Debug("request begin", zap.Stringer("op", op), zap.Any("key", key))
}

func (s *stepSink[K]) Record(step tree.Step[K]) {
	fields := make([]zap.Field, 0, 3)
	fields = append(fields, zap.Stringer("step", step.Kind))
	if step.HasKey {
		fields = append(fields, zap.Any("key", step.Key))
	}
	if s.snapshots && step.Snapshot != nil {
		fields = append(fields, zap.Stringer("tree", step.Snapshot))
	}
	s.logger.Log(s.stepLvl, step.Message, fields...)
}

func (s *stepSink[K]) End(op tree.RBOp, key K, outcome tree.Outcome) {
	s.logger.Debug("request end",
		zap.Stringer("op", op),
		zap.Any("key", key),
		zap.Stringer("outcome", outcome),
	)
}

// LogVerify runs the validity check and logs its result. A broken tree is
// logged with every violation and the returned error is the same one.
func LogVerify[K infra.OrderedKey](logger XLogger, rbtree tree.RBTree[K]) error {
	res := rbtree.Verify()
	if err := res.Err(); err != nil {
		logger.ErrorStack(err, "rbtree verify failed",
			zap.Int64("len", rbtree.Len()),
			zap.Int("violations", len(res.Violations)),
		)
		return err
	}
	logger.Debug("rbtree verified",
		zap.Int64("len", rbtree.Len()),
		zap.Int("height", rbtree.Height()),
		zap.Int("blackHeight", rbtree.BlackHeight()),
	)
	return nil
}
