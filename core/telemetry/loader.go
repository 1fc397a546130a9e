// Package telemetry loads fleet CAN exports and extracts state of charge
// readings from them.
package telemetry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kilianp07/fleetsoc/core/model"
)

// Column names of a fleet telemetry export.
const (
	ColTime      = "can_time"
	ColParam     = "can_param"
	ColValue     = "can_val"
	ColVehicleID = "vehicleid"
)

// Extension selects the files read from a telemetry directory.
const Extension = ".csv"

var requiredColumns = []string{ColTime, ColParam, ColValue, ColVehicleID}

// ListFiles returns the CSV exports directly inside dir, in directory order.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoCSVFiles)
	}
	return files, nil
}

// LoadDir reads every CSV export in dir and concatenates their rows.
// Any unreadable or malformed file aborts the whole load.
func LoadDir(dir string) (*model.Table, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}
	tbl := &model.Table{}
	for _, f := range files {
		rows, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		tbl.Append(f, rows)
	}
	return tbl, nil
}

// LoadFile reads a single CSV export. Columns are matched by header name and
// columns other than the required ones are ignored.
func LoadFile(path string) ([]model.Reading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadCSV(f, filepath.Base(path))
}

// ReadCSV decodes an export from r. name is used in errors and as the
// Source of every returned reading.
func ReadCSV(r io.Reader, name string) ([]model.Reading, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{File: name, Line: 1, Err: ErrEmptyFile}
	}
	if err != nil {
		return nil, csvError(name, err)
	}
	idx, err := columnIndex(name, header)
	if err != nil {
		return nil, err
	}

	var rows []model.Reading
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(name, err)
		}
		line, _ := cr.FieldPos(0)
		rd, err := decodeRow(name, line, rec, idx)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rd)
	}
	return rows, nil
}

func columnIndex(name string, header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, &MissingColumnError{File: name, Column: c}
		}
	}
	return idx, nil
}

func decodeRow(name string, line int, rec []string, idx map[string]int) (model.Reading, error) {
	rawID := strings.TrimSpace(rec[idx[ColVehicleID]])
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return model.Reading{}, &ParseError{File: name, Line: line, Column: ColVehicleID, Value: rawID, Err: err}
	}
	val := math.NaN()
	if rawVal := strings.TrimSpace(rec[idx[ColValue]]); rawVal != "" {
		val, err = strconv.ParseFloat(rawVal, 64)
		if err != nil {
			return model.Reading{}, &ParseError{File: name, Line: line, Column: ColValue, Value: rawVal, Err: err}
		}
	}
	return model.Reading{
		VehicleID: id,
		Time:      rec[idx[ColTime]],
		Param:     rec[idx[ColParam]],
		Value:     val,
		Source:    name,
		Line:      line,
	}, nil
}

func csvError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{File: name, Line: pe.Line, Err: pe.Err}
	}
	return fmt.Errorf("%s: %w", name, err)
}
