/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package rowreader reads burden-estimate tables into burden.DataRows.
//
// Tables may be CSV files with a header row, JSON arrays of objects, or XLSX
// workbooks whose first sheet has a header row.  Every row read is
// normalized: the `country` and `subregion` columns are collapsed into a
// single `location` column (a row with neither is global), empty cells are
// dropped, and the numeric columns are parsed as float64.
package rowreader

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ilhamster/burdenviz/burden"
)

const (
	countryColumn   = "country"
	subregionColumn = "subregion"
)

// Format is a supported table file format.
type Format string

// Supported formats, named by file extension.
const (
	CSV  Format = ".csv"
	JSON Format = ".json"
	XLSX Format = ".xlsx"
)

// Formats lists the supported formats in lookup preference order.
var Formats = []Format{CSV, JSON, XLSX}

// ErrUnsupportedFormat is returned when reading a file of unknown format.
var ErrUnsupportedFormat = errors.New("unsupported table format")

var numericColumns = map[string]struct{}{
	burden.LowerBoundColumn: {},
	burden.UpperBoundColumn: {},
	burden.CountsColumn:     {},
	burden.MeanColumn:       {},
	burden.CILowerColumn:    {},
	burden.CIUpperColumn:    {},
	burden.MedianColumn:     {},
}

// Normalize normalizes the provided row in place, and returns it.
func Normalize(row burden.DataRow) burden.DataRow {
	for col, v := range row {
		switch val := v.(type) {
		case nil:
			delete(row, col)
		case string:
			val = strings.TrimSpace(val)
			if val == "" {
				delete(row, col)
				continue
			}
			row[col] = val
			if _, ok := numericColumns[col]; ok {
				if f, err := strconv.ParseFloat(val, 64); err == nil {
					row[col] = f
				}
			}
		case json.Number:
			if f, err := val.Float64(); err == nil {
				row[col] = f
			} else {
				row[col] = val.String()
			}
		}
	}
	// Country wins over subregion; a row with neither is global.
	for _, col := range []string{subregionColumn, countryColumn} {
		if v, ok := row[col]; ok {
			row[string(burden.Location)] = v
			delete(row, col)
		}
	}
	return row
}

// ReadCSV reads a CSV table with a header row.
func ReadCSV(r io.Reader) ([]burden.DataRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return fromRecords(records), nil
}

func fromRecords(records [][]string) []burden.DataRow {
	if len(records) == 0 {
		return nil
	}
	header := records[0]
	ret := make([]burden.DataRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(burden.DataRow, len(header))
		// Spreadsheet rows may omit trailing empty cells.
		for idx, cell := range record {
			if idx < len(header) {
				row[strings.TrimSpace(header[idx])] = cell
			}
		}
		ret = append(ret, Normalize(row))
	}
	return ret
}

// ReadJSON reads a table encoded as a JSON array of objects.
func ReadJSON(r io.Reader) ([]burden.DataRow, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var rows []burden.DataRow
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}
	for _, row := range rows {
		Normalize(row)
	}
	return rows, nil
}

// ReadXLSX reads the first sheet of an XLSX workbook, which must have a
// header row.
func ReadXLSX(r io.Reader) ([]burden.DataRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet '%s': %w", sheets[0], err)
	}
	return fromRecords(records), nil
}

// Read reads the table at the provided path, in the format given by its
// extension.
func Read(path string) ([]burden.DataRow, error) {
	var read func(io.Reader) ([]burden.DataRow, error)
	switch Format(strings.ToLower(filepath.Ext(path))) {
	case CSV:
		read = ReadCSV
	case JSON:
		read = ReadJSON
	case XLSX:
		read = ReadXLSX
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	rows, err := read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// ReadAll concurrently reads each of the provided paths, returning their rows
// in path order.  The first failure cancels the remaining reads.
func ReadAll(ctx context.Context, paths ...string) ([][]burden.DataRow, error) {
	ret := make([][]burden.DataRow, len(paths))
	errg, ctx := errgroup.WithContext(ctx)
	for idx, path := range paths {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows, err := Read(path)
			if err != nil {
				return err
			}
			ret[idx] = rows
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Find returns the path of the table named base in the provided directory,
// trying each supported format in turn.
func Find(dir, base string) (string, error) {
	for _, format := range Formats {
		path := filepath.Join(dir, base+string(format))
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("no table '%s' in '%s': %w", base, dir, os.ErrNotExist)
}
