package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
		expectJSON  bool
	}{
		{name: "debug text", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info json", level: "info", format: "json", expectLevel: logrus.InfoLevel, expectJSON: true},
		{name: "upper-case level", level: "WARN", format: "text", expectLevel: logrus.WarnLevel},
		{name: "invalid level defaults to info", level: "loud", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogrusAdapterWithOutput(tt.level, tt.format, &buf)
			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok)
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			_, isJSON := adapter.logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.expectJSON, isJSON)
		})
	}
}

func newBufferedAdapter(level logrus.Level) (Logger, *bytes.Buffer) {
	l := logrus.New()
	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return NewLogrusAdapterFromLogger(l), &buf
}

func TestLogrusAdapter_FieldsAndErrors(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.DebugLevel)

	logger.
		WithField(FieldOperation, "fetch_report").
		WithFields(F(FieldCount, 3), F(FieldStoreDriver, "sqlite")).
		WithError(errors.New("disk full")).
		Error("report failed")

	out := buf.String()
	assert.Contains(t, out, "report failed")
	assert.Contains(t, out, "operation=fetch_report")
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, "store_driver=sqlite")
	assert.Contains(t, out, "disk full")
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	logger, buf := newBufferedAdapter(logrus.WarnLevel)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("visible warn")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible warn")
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	logger := NewLogrusAdapterFromLogger(nil)
	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.logger)
}

func TestConvertFields(t *testing.T) {
	fields := convertFields([]Field{F("a", "x"), F("b", 42)})
	assert.Len(t, fields, 2)
	assert.Equal(t, "x", fields["a"])
	assert.Equal(t, 42, fields["b"])
	assert.Empty(t, convertFields(nil))
}

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	mock := NewMockLogger()
	mock.Info("root entry")
	mock.WithField(FieldMonth, "2024-01").Warn("child entry", F(FieldCount, 2))
	mock.WithError(errors.New("boom")).Error("failed")

	entries := mock.Entries()
	require.Len(t, entries, 3)
	assert.True(t, mock.HasEntry("WARN", "child entry"))
	assert.Equal(t, []Field{F(FieldMonth, "2024-01"), F(FieldCount, 2)}, entries[1].Fields)
	require.Len(t, mock.EntriesByLevel("ERROR"), 1)
	assert.EqualError(t, mock.EntriesByLevel("ERROR")[0].Error, "boom")
}

func TestAdaptersImplementLogger(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}
