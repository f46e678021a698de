// Copyright 2025
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/penny-vault/fundview/data"
)

var ErrUnknownEncoding = errors.New("unknown text encoding")

// MissingColumnsError is returned when a source file header lacks columns the
// record bindings need.
type MissingColumnsError struct {
	Table   string
	Path    string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s (%s) is missing required columns: %s", e.Table, e.Path, strings.Join(e.Columns, ", "))
}

// TableStats records what happened while reading one source file.
type TableStats struct {
	Table   string
	Path    string
	Size    int64
	ModTime time.Time
	Rows    int
	Skipped int
}

func (stats TableStats) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Table", stats.Table)
	e.Str("FileName", stats.Path)
	e.Int("NumRows", stats.Rows)
	e.Int("NumSkipped", stats.Skipped)
}

// textEncoding resolves an encoding name. The flag reports UTF-8, whose
// decoder substitutes U+FFFD for invalid bytes instead of failing.
func textEncoding(name string) (encoding.Encoding, bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, false, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, false, nil
	case "utf-8", "utf8":
		return unicode.UTF8, true, nil
	default:
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// rowSet feeds pre-validated rows to gocsv.
type rowSet struct {
	rows [][]string
	pos  int
}

func (set *rowSet) Read() ([]string, error) {
	if set.pos >= len(set.rows) {
		return nil, io.EOF
	}
	row := set.rows[set.pos]
	set.pos++
	return row, nil
}

func (set *rowSet) ReadAll() ([][]string, error) {
	rest := set.rows[set.pos:]
	set.pos = len(set.rows)
	return rest, nil
}

// maxLineSize bounds a single source line.
const maxLineSize = 4 * 1024 * 1024

// tokenizeLine splits one physical line into cells. Each line gets its own
// reader so a stray quote cannot run into the lines after it.
func tokenizeLine(line string, delimiter rune) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.Read()
}

// readRows tokenizes a delimited file line by line. The first non-blank line
// is the header; rows that cannot be parsed, whose column count differs from
// the header, or (when strictUTF8 is set) that did not decode cleanly are
// skipped and counted rather than aborting the read.
func readRows(r io.Reader, table *data.Table, path string, delimiter rune, strictUTF8 bool, logger zerolog.Logger) ([][]string, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		header  []string
		rows    [][]string
		skipped int
		lineNum int
	)

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if header == nil {
			cells, err := tokenizeLine(line, delimiter)
			if err != nil {
				return nil, 0, fmt.Errorf("reading header of %s: %w", path, err)
			}
			for i := range cells {
				cells[i] = strings.TrimSpace(strings.TrimPrefix(cells[i], "\ufeff"))
			}
			if missing := missingColumns(cells, table.Columns); len(missing) > 0 {
				return nil, 0, &MissingColumnsError{Table: table.Name, Path: path, Columns: missing}
			}
			header = cells
			rows = append(rows, header)
			continue
		}

		if strictUTF8 && strings.ContainsRune(line, utf8.RuneError) {
			skipped++
			logger.Debug().Str("FileName", path).Int("Line", lineNum).Msg("skipping row with invalid text encoding")
			continue
		}

		record, err := tokenizeLine(line, delimiter)
		if err != nil {
			skipped++
			logger.Debug().Str("FileName", path).Int("Line", lineNum).Err(err).Msg("skipping malformed row")
			continue
		}

		if len(record) != len(header) {
			skipped++
			logger.Debug().Str("FileName", path).Int("Line", lineNum).Int("NumColumns", len(record)).
				Int("Expected", len(header)).Msg("skipping row with wrong column count")
			continue
		}

		rows = append(rows, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("reading %s: %w", path, err)
	}

	if header == nil {
		return nil, 0, &MissingColumnsError{Table: table.Name, Path: path, Columns: table.Columns}
	}

	return rows, skipped, nil
}

func missingColumns(header, required []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, col := range header {
		present[col] = struct{}{}
	}

	var missing []string
	for _, col := range required {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// normalizer is satisfied by the pointer types of the data records.
type normalizer[T any] interface {
	*T
	Normalize()
}

// readTable loads one source file into records, normalizing the key columns of
// each record before it is returned.
func readTable[T any, P normalizer[T]](sources Sources, key string, logger zerolog.Logger) ([]T, TableStats, error) {
	table := data.Tables[key]
	path := sources.Path(key)
	stats := TableStats{Table: key, Path: path}

	enc, strictUTF8, err := textEncoding(sources.Encoding)
	if err != nil {
		return nil, stats, err
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, stats, fmt.Errorf("opening %s: %w", table.Name, err)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return nil, stats, fmt.Errorf("stat %s: %w", path, err)
	}
	stats.Size = info.Size()
	stats.ModTime = info.ModTime()

	rows, skipped, err := readRows(enc.NewDecoder().Reader(fh), table, path, sources.delimiter(), strictUTF8, logger)
	stats.Skipped = skipped
	if err != nil {
		return nil, stats, err
	}

	records := []T{}
	if len(rows) > 1 {
		if err := gocsv.UnmarshalCSV(&rowSet{rows: rows}, &records); err != nil {
			return nil, stats, fmt.Errorf("binding %s rows: %w", table.Name, err)
		}
	}

	for i := range records {
		P(&records[i]).Normalize()
	}

	stats.Rows = len(records)
	return records, stats, nil
}
