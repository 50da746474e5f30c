package logger

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"promptrec/pkg/config"
)

func newBufferLogger(buf *bytes.Buffer) *zerologLogger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zlog := zerolog.New(buf).Level(zerolog.DebugLevel)
	return &zerologLogger{logger: &zlog, fields: make(map[string]interface{})}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LoggingConfig
		wantErr bool
	}{
		{"info level", &config.LoggingConfig{Level: "info"}, false},
		{"debug level", &config.LoggingConfig{Level: "debug"}, false},
		{"invalid level", &config.LoggingConfig{Level: "invalid"}, true},
		{"file output", &config.LoggingConfig{Level: "info", File: filepath.Join(t.TempDir(), "logs", "promptrec.log")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
		wantErr  bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"fatal", zerolog.InfoLevel, true},
		{"", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			level, err := parseLogLevel(tt.level)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	l.WithField("project", "chapter01").
		WithFields(map[string]interface{}{"index": 3, "complete": false}).
		Info("cursor loaded")

	out := buf.String()
	assert.Contains(t, out, "cursor loaded")
	assert.Contains(t, out, `"project":"chapter01"`)
	assert.Contains(t, out, `"index":3`)
	assert.Contains(t, out, `"complete":false`)
}

func TestWithFieldsDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	_ = l.WithField("child", "yes")
	l.Info("parent")

	assert.NotContains(t, buf.String(), "child")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	assert.Same(t, l, l.WithError(nil))

	l.WithError(errors.New("disk full")).Error("save failed")
	assert.Contains(t, buf.String(), "disk full")
}

func TestFieldTypes(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	l.WarnWithFields("all types", map[string]interface{}{
		"int64":    int64(7),
		"float":    1.5,
		"time":     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		"duration": 2 * time.Second,
		"strings":  []string{"a", "b"},
		"ints":     []int{1, 2},
		"err":      errors.New("boom"),
		"custom":   struct{ Name string }{Name: "x"},
	})

	out := buf.String()
	assert.Contains(t, out, "all types")
	assert.Contains(t, out, `"err":"boom"`)
	assert.Contains(t, out, `"strings":["a","b"]`)
}

func TestGlobalLogger(t *testing.T) {
	require.NoError(t, Initialize(&config.LoggingConfig{Level: "debug"}))
	assert.NotNil(t, GetLogger())

	captured := NewTestLogger()
	SetLogger(captured)
	defer SetLogger(nil)

	WithField("k", "v").Info("via global")
	assert.True(t, captured.HasMessage("via global"))
}

func TestTestLogger(t *testing.T) {
	l := NewTestLogger()

	l.WithField("project", "p1").WithError(errors.New("nope")).Warn("backup failed")
	l.Info("plain")

	msgs := l.GetMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "WARN", msgs[0].Level)
	assert.Equal(t, "p1", msgs[0].Fields["project"])
	assert.EqualError(t, msgs[0].Error, "nope")
	assert.Len(t, l.GetMessagesByLevel("INFO"), 1)
	assert.Contains(t, l.String(), "backup failed")

	l.Clear()
	assert.Empty(t, l.GetMessages())
}

func TestHelpers(t *testing.T) {
	l := NewTestLogger()

	LogArtifact(l, "p1", "0001", "/tmp/0001.wav", nil)
	LogArtifact(l, "p1", "0002", "/tmp/0002.wav", errors.New("denied"))
	LogCursor(l, "next", 1, 4)

	assert.True(t, l.HasMessage("Recording stored"))
	assert.True(t, l.HasMessage("Recording not stored"))
	cursor := l.GetMessagesByLevel("DEBUG")
	require.Len(t, cursor, 1)
	assert.Equal(t, "25.0%", cursor[0].Fields["percentage"])

	NewNopLogger().WithField("a", 1).Info("ignored")
}
