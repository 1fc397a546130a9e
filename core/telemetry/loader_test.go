package telemetry

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "vehicleid,can_time,can_param,can_val\n"

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func csvRows(n int) string {
	var b strings.Builder
	b.WriteString(header)
	for i := 0; i < n; i++ {
		b.WriteString("101,01/03/2024 04:30:00,Battery SOC,50\n")
	}
	return b.String()
}

func TestLoadDir_RowCountIsSumOfFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", csvRows(3))
	writeFile(t, dir, "b.csv", csvRows(5))
	writeFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0o755))

	tbl, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 8, tbl.Len())
	assert.Len(t, tbl.Files, 2)
}

func TestLoadDir_ColumnsMatchedByName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "can_param,extra,can_val,vehicleid,can_time\nBattery SOC,x,42.5,7,02/03/2024 10:00:00\n")
	writeFile(t, dir, "b.csv", header+"8,02/03/2024 11:00:00,Speed,\n")

	tbl, err := LoadDir(dir)
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	first := tbl.Readings[0]
	assert.Equal(t, 7, first.VehicleID)
	assert.Equal(t, "Battery SOC", first.Param)
	assert.Equal(t, 42.5, first.Value)
	assert.Equal(t, "02/03/2024 10:00:00", first.Time)
	assert.Equal(t, "a.csv", first.Source)
	assert.Equal(t, 2, first.Line)

	assert.True(t, math.IsNaN(tbl.Readings[1].Value))
}

func TestLoadDir_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("no csv files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "data.json", "{}")
		_, err := LoadDir(dir)
		assert.ErrorIs(t, err, ErrNoCSVFiles)
	})
	t.Run("missing column", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.csv", "vehicleid,can_time,can_param\n1,01/01/2024 00:00:00,Battery SOC\n")
		_, err := LoadDir(dir)
		var mce *MissingColumnError
		require.True(t, errors.As(err, &mce))
		assert.Equal(t, ColValue, mce.Column)
		assert.Equal(t, "a.csv", mce.File)
	})
	t.Run("bad vehicle id", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.csv", header+"1,01/01/2024 00:00:00,Battery SOC,10\nbus,01/01/2024 00:00:00,Battery SOC,10\n")
		_, err := LoadDir(dir)
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, ColVehicleID, pe.Column)
		assert.Equal(t, 3, pe.Line)
	})
	t.Run("bad value", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.csv", header+"1,01/01/2024 00:00:00,Battery SOC,full\n")
		_, err := LoadDir(dir)
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, ColValue, pe.Column)
		assert.Equal(t, "full", pe.Value)
	})
	t.Run("ragged row", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.csv", header+"1,01/01/2024 00:00:00\n")
		_, err := LoadDir(dir)
		var pe *ParseError
		assert.True(t, errors.As(err, &pe))
	})
	t.Run("empty file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.csv", "")
		_, err := LoadDir(dir)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})
}

func TestReadCSV_BOMHeader(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("\ufeff"+header+"5,01/01/2024 00:00:00,Battery SOC,80\n"), "bom.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].VehicleID)
}
