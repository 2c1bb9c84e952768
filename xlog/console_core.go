package xlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ zapcore.Core = (*consoleCore)(nil)

type consoleCore struct {
	lvlEnabler zapcore.LevelEnabler
	ws         zapcore.WriteSyncer
	core       zapcore.Core
}

func (cc *consoleCore) Enabled(lvl zapcore.Level) bool       { return cc.lvlEnabler.Enabled(lvl) }
func (cc *consoleCore) With(fields []zap.Field) zapcore.Core { return cc.core.With(fields) }
func (cc *consoleCore) Sync() error                          { return cc.core.Sync() }
func (cc *consoleCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return cc.core.Check(ent, ce)
}

func (cc *consoleCore) Write(ent zapcore.Entry, fields []zap.Field) error {
	return cc.core.Write(ent, fields)
}

func defaultCoreEncoderCfg() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:    "msg",
		LevelKey:      "lvl",
		TimeKey:       "ts",
		CallerKey:     "callAt",
		EncodeCaller:  zapcore.ShortCallerEncoder,
		FunctionKey:   coreKeyIgnored,
		NameKey:       "component",
		EncodeName:    zapcore.FullNameEncoder,
		StacktraceKey: coreKeyIgnored,
	}
}

// newConsoleCore writes to ws, stdout if ws is nil.
func newConsoleCore(ws zapcore.WriteSyncer) XLogCoreConstructor {
	if ws == nil {
		ws = zapcore.Lock(os.Stdout)
	}
	return func(
		lvlEnabler zapcore.LevelEnabler,
		encoder logEncoderType,
		lvlEnc zapcore.LevelEncoder,
		tsEnc zapcore.TimeEncoder,
	) zapcore.Core {
		config := defaultCoreEncoderCfg()
		config.EncodeLevel = lvlEnc
		config.EncodeTime = tsEnc
		return &consoleCore{
			lvlEnabler: lvlEnabler,
			ws:         ws,
			core:       zapcore.NewCore(getEncoderByType(encoder)(config), ws, lvlEnabler),
		}
	}
}

// leveledCore puts the logger level in front of a core built elsewhere.
type leveledCore struct {
	lvlEnabler zapcore.LevelEnabler
	zapcore.Core
}

func (lc *leveledCore) Enabled(lvl zapcore.Level) bool {
	return lc.lvlEnabler.Enabled(lvl) && lc.Core.Enabled(lvl)
}

func (lc *leveledCore) With(fields []zap.Field) zapcore.Core {
	return &leveledCore{lvlEnabler: lc.lvlEnabler, Core: lc.Core.With(fields)}
}

func (lc *leveledCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !lc.lvlEnabler.Enabled(ent.Level) {
		return ce
	}
	return lc.Core.Check(ent, ce)
}

func newExternalCore(core zapcore.Core) XLogCoreConstructor {
	return func(
		lvlEnabler zapcore.LevelEnabler,
		_ logEncoderType,
		_ zapcore.LevelEncoder,
		_ zapcore.TimeEncoder,
	) zapcore.Core {
		return &leveledCore{lvlEnabler: lvlEnabler, Core: core}
	}
}
