package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTemp(t *testing.T, level LogLevel) string {
	t.Helper()
	prev := slog.Default()
	path := filepath.Join(t.TempDir(), "logs", "simplevi.log")
	require.NoError(t, InitLogger(level, path))
	t.Cleanup(func() {
		Close()
		Log, recent, logWriter = nil, nil, nil
		slog.SetDefault(prev)
	})
	return path
}

// =============================================================================
// Level Tests
// =============================================================================

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// Logger Tests
// =============================================================================

func TestInitLogger_WritesJSONAndFiltersLevel(t *testing.T) {
	path := initTemp(t, LevelInfo)

	Debug("hidden detail")
	Info("editor started", "rows", 24)
	With("component", "editor").Warn("write failed")
	warn, _ := Counts()
	assert.Equal(t, 1, warn)

	assert.Equal(t, path, LogPath)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, `"msg":"editor started"`)
	assert.Contains(t, content, `"rows":24`)
	assert.Contains(t, content, `"component":"editor"`)
	assert.NotContains(t, content, "hidden detail")
}

func TestTail_CapturesWarningsAndErrors(t *testing.T) {
	initTemp(t, LevelDebug)

	_, ok := Latest()
	assert.False(t, ok)

	Info("not captured")
	Warn("first")
	Error("second")

	latest, ok := Latest()
	require.True(t, ok)
	assert.Equal(t, "second", latest.Message)
	assert.Equal(t, slog.LevelError, latest.Level)
	assert.Equal(t, 2, recent.count)

	warn, errs := Counts()
	assert.Equal(t, 1, warn)
	assert.Equal(t, 1, errs)
}

func TestTail_Wraps(t *testing.T) {
	initTemp(t, LevelWarn)

	for i := range 60 {
		Warn(fmt.Sprintf("warning %d", i))
	}

	assert.Equal(t, 50, recent.count)
	latest, ok := Latest()
	require.True(t, ok)
	assert.Equal(t, "warning 59", latest.Message)
	// The oldest kept entry sits where the next one will be written.
	assert.Equal(t, "warning 10", recent.entries[recent.head].Message)

	warn, _ := Counts()
	assert.Equal(t, 60, warn)
}

func TestHelpers_WithoutInit(t *testing.T) {
	assert.NotPanics(t, func() { Info("no logger yet") })
	_, ok := Latest()
	assert.False(t, ok)
	warn, errs := Counts()
	assert.Zero(t, warn)
	assert.Zero(t, errs)
}

func TestEntry_Format(t *testing.T) {
	e := Entry{Level: slog.LevelWarn, Message: "capacity reached"}
	assert.Contains(t, e.Format(), "WARN  capacity reached")
}
