package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/railsathi/railsathi/internal/config"
)

const slowQueryThreshold = 200 * time.Millisecond

// slogGormLogger adapts gorm's logger interface onto slog so SQL lines
// carry the same structure as the rest of the service's logs. Record
// lookups that miss are routine and are never logged as errors.
type slogGormLogger struct {
	logger *slog.Logger
	level  gormlogger.LogLevel
}

// NewSlogGormLogger derives the gorm log level from LOG_LEVEL: WARN and
// above suppress per-query lines, anything else logs every query.
func NewSlogGormLogger(l *slog.Logger) gormlogger.Interface {
	level := gormlogger.Info
	switch os.Getenv(config.ENV_KEY_LOG_LEVEL) {
	case "WARN":
		level = gormlogger.Warn
	case "ERROR":
		level = gormlogger.Error
	}
	return &slogGormLogger{logger: l, level: level}
}

func (l *slogGormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	out := *l
	out.level = level
	return &out
}

func (l *slogGormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.logger.InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *slogGormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *slogGormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.logger.ErrorContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	attrs := []slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("latency", elapsed),
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		attrs = append(attrs, slog.String("err", err.Error()))
		l.logger.LogAttrs(ctx, slog.LevelError, "sql_error", attrs...)
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		attrs = append(attrs, slog.String("slow_threshold", slowQueryThreshold.String()))
		l.logger.LogAttrs(ctx, slog.LevelWarn, "sql_slow", attrs...)
	case l.level >= gormlogger.Info:
		l.logger.LogAttrs(ctx, slog.LevelInfo, "sql", attrs...)
	}
}
