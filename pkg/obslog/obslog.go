// Package obslog wraps go.uber.org/zap for parse-lifecycle diagnostics:
// pack load, per-parse completion (pop count, N-best size), and
// per-sentence failures. A thin wrapper that builds the zap core once
// and exposes leveled, field-based methods rather than format-string
// logging.
//
// The A* driver itself never imports this package: a logging call inside
// the hot search loop would add allocation and timing jitter to a
// computation whose whole purpose is a tight admissible bound, so every
// call site here sits at a parse or batch boundary — once per parse, not
// once per agenda pop.
package obslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a *zap.Logger with the fields this module logs by name.
type Logger struct {
	z *zap.Logger
}

// Config selects the logger's level and encoding.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Development bool   // console encoding instead of JSON
}

// New builds a Logger from cfg. An empty Config yields an info-level JSON
// logger writing to stderr, matching zap's own production default.
func New(cfg Config) (*Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.Set(cfg.Level); err != nil {
			return nil, err
		}
	}

	var zcfg zap.Config
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	z, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// Nop returns a Logger that discards everything, for tests and callers that
// don't want diagnostics.
func Nop() *Logger { return &Logger{z: zap.NewNop()} }

// PackLoaded logs a successful grammar pack load or hot-reload.
func (l *Logger) PackLoaded(name, dir string, numCategories int) {
	l.z.Info("grammar pack loaded",
		zap.String("pack", name), zap.String("dir", dir), zap.Int("categories", numCategories))
}

// PackReloadFailed logs a failed hot-reload attempt; the watcher keeps
// serving the previous pack, since packs are immutable values and are
// never half-updated in place.
func (l *Logger) PackReloadFailed(name, dir string, err error) {
	l.z.Warn("grammar pack reload failed, keeping previous pack",
		zap.String("pack", name), zap.String("dir", dir), zap.Error(err))
}

// ParseCompleted logs a successful parse's resource usage.
func (l *Logger) ParseCompleted(correlationID string, sentenceLen, popCount, chartLen, nbest int) {
	l.z.Info("parse completed",
		zap.String("correlation_id", correlationID),
		zap.Int("sentence_len", sentenceLen),
		zap.Int("pop_count", popCount),
		zap.Int("chart_len", chartLen),
		zap.Int("nbest", nbest))
}

// ParseFailed logs a per-sentence failure (SentenceTooLong, BudgetExceeded,
// InvalidInput) that a batch continues past.
func (l *Logger) ParseFailed(correlationID string, sentenceLen int, err error) {
	l.z.Warn("parse failed",
		zap.String("correlation_id", correlationID), zap.Int("sentence_len", sentenceLen), zap.Error(err))
}

// InvariantViolation logs an internal invariant breach recovered at the
// batch-worker boundary before the panic is re-surfaced as a per-sentence
// error to the caller.
func (l *Logger) InvariantViolation(correlationID string, err error) {
	l.z.Error("chart invariant violation recovered at worker boundary",
		zap.String("correlation_id", correlationID), zap.Error(err))
}

// Sync flushes buffered log entries; call before process exit.
func (l *Logger) Sync() error {
	return l.z.Sync()
}

// Underlying exposes the wrapped *zap.Logger for callers needing direct
// access (e.g. threading it into a library that takes a *zap.Logger).
func (l *Logger) Underlying() *zap.Logger { return l.z }
