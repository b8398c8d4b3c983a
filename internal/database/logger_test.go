package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newCaptureLogger() (gormlogger.Interface, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewSlogGormLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	return l, &buf
}

func traceQuery() (string, int64) {
	return "SELECT * FROM complaints WHERE complain_id = 1", 1
}

func TestSlogGormLogger_TraceQuery(t *testing.T) {
	l, buf := newCaptureLogger()

	l.Trace(context.Background(), time.Now(), traceQuery, nil)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"msg":"sql"`)
	assert.Contains(t, out, "SELECT * FROM complaints")
	assert.Contains(t, out, `"rows":1`)
}

func TestSlogGormLogger_TraceError(t *testing.T) {
	l, buf := newCaptureLogger()

	l.Trace(context.Background(), time.Now(), traceQuery, errors.New("constraint violation"))

	out := buf.String()
	assert.Contains(t, out, `"msg":"sql_error"`)
	assert.Contains(t, out, "constraint violation")
}

func TestSlogGormLogger_RecordNotFoundIsNotAnError(t *testing.T) {
	l, buf := newCaptureLogger()

	l.Trace(context.Background(), time.Now(), traceQuery, gorm.ErrRecordNotFound)

	out := buf.String()
	assert.NotContains(t, out, "sql_error")
	assert.Contains(t, out, `"msg":"sql"`)
}

func TestSlogGormLogger_TraceSlow(t *testing.T) {
	l, buf := newCaptureLogger()

	l.Trace(context.Background(), time.Now().Add(-time.Second), traceQuery, nil)

	out := buf.String()
	assert.Contains(t, out, `"msg":"sql_slow"`)
	assert.Contains(t, out, "slow_threshold")
}

func TestSlogGormLogger_SilentMode(t *testing.T) {
	l, buf := newCaptureLogger()

	l.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), traceQuery, errors.New("boom"))

	assert.Empty(t, buf.String())
}
