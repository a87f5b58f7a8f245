// Package logging provides the structured logger this module's octree
// traversal uses to report non-fatal diagnostics (capacity exhaustion,
// degenerate geometry) without aborting a query, per spec.md §7's
// propagation policy for kinds (a)-(c). Adapted from the teacher's
// go.viam.com/rdk/logging package: a thin, level-gated wrapper over a
// zap.SugaredLogger rather than a bespoke formatter.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured, leveled logger passed to octree.New and
// threaded through a traversal. Its shape mirrors the teacher's
// logging.Logger closely enough that call sites read identically
// (Named sub-loggers, *w variadic key/value pairs) without dragging in
// the teacher's net-appender/registry machinery this module has no use
// for — there is no remote log-export concern here.
type Logger interface {
	Named(name string) Logger
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

type sugared struct {
	s *zap.SugaredLogger
}

func (l *sugared) Named(name string) Logger {
	return &sugared{s: l.s.Named(name)}
}

func (l *sugared) Debugw(msg string, keysAndValues ...interface{}) { l.s.Debugw(msg, keysAndValues...) }
func (l *sugared) Infow(msg string, keysAndValues ...interface{})  { l.s.Infow(msg, keysAndValues...) }
func (l *sugared) Warnw(msg string, keysAndValues ...interface{})  { l.s.Warnw(msg, keysAndValues...) }
func (l *sugared) Errorw(msg string, keysAndValues ...interface{}) { l.s.Errorw(msg, keysAndValues...) }

// config returns the console encoder config the teacher's
// NewLoggerConfig uses, disabling stacktraces and coloring levels.
func config(level zapcore.Level) zap.Config {
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

func build(name string, level zapcore.Level) Logger {
	zl, err := config(level).Build()
	if err != nil {
		// config() only ever builds a static, hand-validated Config; a
		// build error here means zap itself is broken, not caller input.
		panic(err)
	}
	return &sugared{s: zl.Sugar().Named(name)}
}

// NewLogger returns a Logger that emits Info+ logs to stdout, the
// default a package-level constructor (octree.New, etc.) falls back to
// when the caller passes nil.
func NewLogger(name string) Logger {
	return build(name, zapcore.InfoLevel)
}

// NewDebugLogger returns a Logger that emits Debug+ logs to stdout, for
// callers wanting every warm-start/degeneracy note traversal produces.
func NewDebugLogger(name string) Logger {
	return build(name, zapcore.DebugLevel)
}

// NewTestLogger returns a Debug+ Logger, for use in _test.go files that
// want traversal diagnostics surfaced on test failure without wiring a
// full logging.Logger by hand.
func NewTestLogger(name string) Logger {
	return build(name, zapcore.DebugLevel)
}
