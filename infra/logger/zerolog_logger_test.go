package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	closer, err := Setup(Options{Level: "debug"})
	require.NoError(t, err)
	defer func() { assert.NoError(t, closer.Close()) }()

	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Infow("info", map[string]any{"rows": 3})
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLogger_FieldsAndLevel(t *testing.T) {
	_, err := Setup(Options{Level: "warn", RunID: "run-1"})
	require.NoError(t, err)
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		_, _ = Setup(Options{})
	})

	l := New("loader")
	l.Infof("dropped")
	l.Warnf("kept %d", 2)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept 2", entry["message"])
	assert.Equal(t, "loader", entry["component"])
	assert.Equal(t, "run-1", entry["run_id"])
	assert.Equal(t, "warn", entry["level"])
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleetsoc.log")
	closer, err := Setup(Options{File: path, MaxSizeMB: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = Setup(Options{}) })

	New("file").Infof("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestSetup_BadLevel(t *testing.T) {
	_, err := Setup(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Infow("nothing", nil)
}
