package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreviewer "github.com/kilianp07/fleetsoc/core/viewer"
)

var captured bytes.Buffer

type captureViewer struct{}

func (captureViewer) Show(_ context.Context, page coreviewer.Page) error {
	return page.Render(&captured)
}

func init() {
	_ = coreviewer.Register("capture", func(map[string]any) (coreviewer.Viewer, error) {
		return captureViewer{}, nil
	})
}

func execute(t *testing.T, stdin string, args ...string) error {
	t.Helper()
	cfgPath, dirPath, vehicles, viewerType = "", "", "", ""
	captured.Reset()

	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	return rootCmd.Execute()
}

func writeExport(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	data := "vehicleid,can_time,can_param,can_val\n" +
		"101,01/03/2024 02:00:00,Battery SOC,15\n" +
		"101,01/03/2024 06:00:00,Battery SOC,30\n" +
		"102,01/03/2024 07:00:00,Battery SOC,64\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "export.csv"), []byte(data), 0o644))
	return dir
}

func TestRoot_Flags(t *testing.T) {
	dir := writeExport(t)
	err := execute(t, "", "--dir", dir, "--vehicles", "101,102", "--viewer", "capture")
	require.NoError(t, err)
	html := captured.String()
	assert.Contains(t, html, "Battery SOC Tracking for Specified Buses: 101, 102")
	assert.Contains(t, html, "Bus ID: 101 (Maintenance Needed)")
	assert.Contains(t, html, "Bus ID: 102")
}

func TestRoot_Prompts(t *testing.T) {
	dir := writeExport(t)
	err := execute(t, dir+"\n102\n", "--viewer", "capture")
	require.NoError(t, err)
	assert.Contains(t, captured.String(), "Battery SOC Tracking for Specified Buses: 102")
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := writeExport(t)
	cfg := filepath.Join(t.TempDir(), "fleetsoc.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("analysis:\n  maintenance_threshold: 10\nviewer:\n  type: capture\n"), 0o644))

	err := execute(t, "", "-c", cfg, "--dir", dir, "--vehicles", "101")
	require.NoError(t, err)
	html := captured.String()
	assert.Contains(t, html, "Bus ID: 101")
	assert.NotContains(t, html, "Maintenance Needed")
}

func TestRoot_Errors(t *testing.T) {
	dir := writeExport(t)
	assert.Error(t, execute(t, "", "--dir", dir, "--vehicles", "x", "--viewer", "capture"))
	assert.Error(t, execute(t, "", "--dir", filepath.Join(dir, "missing"), "--vehicles", "101", "--viewer", "capture"))
	assert.Error(t, execute(t, "", "--dir", dir, "--vehicles", "999", "--viewer", "capture"))
	assert.Error(t, execute(t, "", "--dir", dir, "--vehicles", "101", "--viewer", "nope"))
}
