package xlog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/benz9527/rbsteps/lib/infra"
)

func TestLogLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LogLevelDebug.String())
	require.Equal(t, "INFO", LogLevelInfo.String())
	require.Equal(t, "WARN", LogLevelWarn.String())
	require.Equal(t, "ERROR", LogLevelError.String())
	require.Equal(t, zapcore.DebugLevel, LogLevelDebug.zapLevel())
	require.Equal(t, zapcore.InfoLevel, LogLevelInfo.zapLevel())
	require.Equal(t, zapcore.WarnLevel, LogLevelWarn.zapLevel())
	require.Equal(t, zapcore.ErrorLevel, LogLevelError.zapLevel())
}

func TestGetLogLevelOrDefault(t *testing.T) {
	testcases := []struct {
		env      string
		expected zapcore.Level
	}{
		{"", zapcore.DebugLevel},
		{"  ", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"WARN", zapcore.WarnLevel},
		{" error ", zapcore.ErrorLevel},
		{"verbose", zapcore.DebugLevel},
	}
	for _, tc := range testcases {
		t.Run(tc.env, func(tt *testing.T) {
			require.Equal(tt, tc.expected, getLogLevelOrDefault(tc.env))
		})
	}
}

func TestXLogger_LevelFromEnv(t *testing.T) {
	t.Setenv("XLOG_LVL", "warn")
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewXLogger(WithXLoggerCore(core))
	require.Equal(t, "warn", logger.Level())

	logger.Info("dropped")
	logger.Warn("kept")
	require.Equal(t, 1, logs.Len())
	require.Equal(t, "kept", logs.All()[0].Message)

	logger.IncreaseLogLevel(zapcore.DebugLevel)
	logger.Debug("kept too")
	require.Equal(t, 2, logs.Len())

	// An explicit level wins over the env.
	logger = NewXLogger(WithXLoggerCore(core), WithXLoggerLevel(LogLevelError))
	require.Equal(t, "error", logger.Level())
}

func TestXLogger_AllAPIs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewXLogger(
		WithXLoggerLevel(LogLevelDebug),
		WithXLoggerCore(core),
		WithXLoggerContextFieldExtract("traceId", "TraceID"),
		WithXLoggerContextFieldExtract("service"),
		WithXLoggerContextFieldExtract("tenant", ContextKeyMapToOmitempty),
		WithXLoggerContextFieldExtract(""),
	)

	ctx := ContextWithField(context.TODO(), "traceId", "1234567890")
	logger.Log(zapcore.InfoLevel, "log", zap.Int("n", 1))
	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error(errors.New("boom"), "error")
	logger.Error(nil, "error without err")
	logger.Logf(zapcore.WarnLevel, "logf %d", 42)
	logger.DebugContext(ctx, "debug ctx")
	logger.InfoContext(ctx, "info ctx")
	logger.WarnContext(ctx, "warn ctx")
	logger.ErrorContext(ctx, errors.New("boom"), "error ctx")
	require.NoError(t, logger.Sync())

	entries := logs.AllUntimed()
	require.Len(t, entries, 11)
	require.Equal(t, int64(1), entries[0].ContextMap()["n"])
	require.Equal(t, "boom", entries[4].ContextMap()["error"])
	require.Empty(t, entries[5].ContextMap())
	require.Equal(t, "logf 42", entries[6].Message)

	require.Equal(t, map[string]any{
		"TraceID": "1234567890",
		"service": "nil",
	}, entries[7].ContextMap())
	require.Equal(t, "boom", entries[10].ContextMap()["error"])

	ctx = ContextWithField(ctx, "tenant", "acme")
	logger.InfoContext(ctx, "tenant ctx")
	require.Equal(t, "acme", logs.All()[11].ContextMap()["tenant"])

	named := logger.Named("child")
	named.Info("from child")
	require.Equal(t, "child", logs.All()[12].LoggerName)
	named.IncreaseLogLevel(zapcore.ErrorLevel)
	require.Equal(t, "error", logger.Level())
}

func TestXLogger_ErrorStack(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewXLogger(WithXLoggerLevel(LogLevelDebug), WithXLoggerCore(core))

	logger.ErrorStack(infra.NewErrorStack("red violation"), "verify")
	logger.ErrorStack(infra.WrapErrorStack(errors.New("e1"), errors.New("e2")), "verify")
	logger.ErrorStack(errors.New("plain"), "verify")
	logger.ErrorStack(nil, "verify")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	require.Equal(t, "red violation", entries[0].ContextMap()["error"])
	require.NotEmpty(t, entries[0].ContextMap()["errorStack"])
	require.Equal(t, []any{"e1", "e2"}, entries[1].ContextMap()["errors"])
	require.Equal(t, map[string]any{"error": "plain"}, entries[2].ContextMap())
	require.Empty(t, entries[3].ContextMap())
}

func TestXLogger_WriterEncoders(t *testing.T) {
	testcases := []struct {
		name    string
		encoder logEncoderType
		check   func(tt *testing.T, line string)
	}{
		{
			name:    "json",
			encoder: JSON,
			check: func(tt *testing.T, line string) {
				var m map[string]any
				require.NoError(tt, json.Unmarshal([]byte(line), &m))
				require.Equal(tt, "hello", m["msg"])
				require.Equal(tt, "INFO", m["lvl"])
				require.Equal(tt, "rbsteps", m["component"])
				require.Equal(tt, "tree", m["k"])
				require.Contains(tt, m["callAt"], "xlog_test.go")
			},
		},
		{
			name:    "plain text",
			encoder: PlainText,
			check: func(tt *testing.T, line string) {
				require.Contains(tt, line, "INFO")
				require.Contains(tt, line, "hello")
				require.Contains(tt, line, `{"k": "tree"}`)
			},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			buf := &zaptest.Buffer{}
			logger := NewXLogger(
				WithXLoggerLevel(LogLevelInfo),
				WithXLoggerEncoder(tc.encoder),
				WithXLoggerWriter(buf),
				WithXLoggerLevelEncoder(zapcore.CapitalLevelEncoder),
				WithXLoggerTimeEncoder(nil),
			).Named("rbsteps")
			logger.Debug("hidden")
			logger.Info("hello", zap.String("k", "tree"))
			require.NoError(tt, logger.Sync())

			lines := buf.Lines()
			require.Len(tt, lines, 1)
			tc.check(tt, lines[0])
		})
	}

	require.Panics(t, func() {
		NewXLogger(WithXLoggerEncoder(_encMax))
	})
	require.Panics(t, func() {
		NewXLogger(WithXLoggerCore(nil))
	})
}

func TestXLogTeeCore(t *testing.T) {
	c1, logs1 := observer.New(zapcore.InfoLevel)
	c2, logs2 := observer.New(zapcore.ErrorLevel)
	tee := XLogTeeCore(c1, c2)

	require.Equal(t, zapcore.InfoLevel, zapcore.LevelOf(tee))
	require.False(t, tee.Enabled(zapcore.DebugLevel))
	require.True(t, tee.Enabled(zapcore.InfoLevel))

	l := zap.New(tee).With(zap.String("tree", "rb"))
	l.Info("info")
	l.Error("error")
	require.NoError(t, tee.Sync())

	require.Equal(t, 2, logs1.Len())
	require.Equal(t, 1, logs2.Len())
	require.Equal(t, "rb", logs2.All()[0].ContextMap()["tree"])
}
