package corpus

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const (
	nameColumn       = "Satz"
	confidenceColumn = "erkannt"

	// nbsp shows up glued to some confidence values in erkennung.txt.
	nbsp = "\u00a0"
)

// Row is one utterance line of erkennung.txt.
type Row struct {
	File  string
	Value string
}

// ReadConfidenceTable decodes the Latin-1 erkennung.txt table and returns
// its Satz and erkannt columns. Only spaces and tabs separate fields.
// File is the Satz value joined under dir.
func ReadConfidenceTable(r io.Reader, dir string) ([]Row, error) {
	sc := bufio.NewScanner(charmap.ISO8859_1.NewDecoder().Reader(r))
	nameIdx, valueIdx := -1, -1
	var rows []Row
	line := 0
	for sc.Scan() {
		line++
		fields := splitFields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if nameIdx < 0 {
			for i, f := range fields {
				switch f {
				case nameColumn:
					nameIdx = i
				case confidenceColumn:
					valueIdx = i
				}
			}
			if nameIdx < 0 || valueIdx < 0 {
				return nil, fmt.Errorf("%w: want columns %q and %q, got %q", ErrBadHeader, nameColumn, confidenceColumn, fields)
			}
			continue
		}
		if len(fields) <= nameIdx || len(fields) <= valueIdx {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrBadConfidence, line, len(fields))
		}
		rows = append(rows, Row{
			File:  dir + "/" + fields[nameIdx],
			Value: fields[valueIdx],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read confidence table: %w", err)
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("%w: empty table", ErrBadHeader)
	}
	return rows, nil
}

func splitFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r'
	})
}

// CleanConfidence turns a raw erkannt value such as "73,9" into a
// percentage in [0,100].
func CleanConfidence(raw string) (float64, error) {
	s := strings.ReplaceAll(raw, nbsp, "")
	s = strings.ReplaceAll(s, ",", ".")
	if !plainDecimal(s) {
		return 0, fmt.Errorf("%w: %q", ErrBadConfidence, raw)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadConfidence, raw)
	}
	if math.IsNaN(v) || v < 0 || v > 100 {
		return 0, fmt.Errorf("%w: %q out of range [0,100]", ErrBadConfidence, raw)
	}
	return v, nil
}

// plainDecimal accepts an optional sign, digits and at most one dot.
// ParseFloat alone would also take NaN, Inf, exponents and hex floats.
func plainDecimal(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "+"), "-")
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// AlignConfidences reindexes rows to files and returns one probability in
// [0,1] per file, in files order.
func AlignConfidences(rows []Row, files []string) ([]float64, error) {
	byFile := make(map[string]string, len(rows))
	for _, row := range rows {
		if _, dup := byFile[row.File]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRow, row.File)
		}
		byFile[row.File] = row.Value
	}
	out := make([]float64, 0, len(files))
	for _, f := range files {
		raw, ok := byFile[f]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfidence, f)
		}
		v, err := CleanConfidence(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		out = append(out, v/100)
	}
	return out, nil
}

// LoadConfidences reads erkennung.txt from r and aligns it to files, which
// must be relative to the same root as dir (for example "wav/03a01Wa.wav").
func LoadConfidences(r io.Reader, dir string, files []string) ([]float64, error) {
	rows, err := ReadConfidenceTable(r, dir)
	if err != nil {
		return nil, err
	}
	return AlignConfidences(rows, files)
}
