package audformat

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads a database saved with Save. Column values are typed by their
// scheme's dtype; columns without a scheme load as strings. An empty cell
// loads as a missing value (nil) whatever the dtype, so an empty string
// written by Save also comes back as nil.
func Load(dir string) (*Database, error) {
	f, err := os.Open(filepath.Join(dir, HeaderFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var h header
	if err := yaml.NewDecoder(f).Decode(&h); err != nil {
		return nil, fmt.Errorf("decode %s: %w", HeaderFile, err)
	}
	db, err := fromHeader(h)
	if err != nil {
		return nil, err
	}
	for id, t := range db.Tables {
		if err := db.readTable(filepath.Join(dir, TableFile(id)), t); err != nil {
			return nil, fmt.Errorf("table %s: %w", id, err)
		}
	}
	for id, t := range db.MiscTables {
		if err := db.readTable(filepath.Join(dir, TableFile(id)), t); err != nil {
			return nil, fmt.Errorf("misc table %s: %w", id, err)
		}
	}
	return db, nil
}

func (db *Database) readTable(path string, t *Table) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(t.Columns) + 1
	head, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if head[0] != t.Index.Name {
		return fmt.Errorf("index column is %q, want %q", head[0], t.Index.Name)
	}
	for i, c := range t.Columns {
		if head[i+1] != c.ID {
			return fmt.Errorf("column %d is %q, want %q", i+1, head[i+1], c.ID)
		}
	}
	dtypes := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		dtypes[i] = DtypeStr
		if s, ok := db.Schemes[c.SchemeID]; ok {
			dtypes[i] = s.Dtype
		}
	}

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		key, err := parseValue(t.Index.Dtype, record[0])
		if err != nil {
			return fmt.Errorf("index %q: %w", record[0], err)
		}
		t.Index.Values = append(t.Index.Values, key)
		for i, c := range t.Columns {
			v, err := parseValue(dtypes[i], record[i+1])
			if err != nil {
				return fmt.Errorf("row %v column %s: %w", key, c.ID, err)
			}
			c.Values = append(c.Values, v)
		}
	}
	for _, c := range t.Columns {
		if c.Values == nil {
			c.Values = []any{}
		}
	}
	return nil
}

func parseValue(dtype, s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	switch dtype {
	case DtypeStr:
		return s, nil
	case DtypeInt:
		return strconv.Atoi(s)
	case DtypeFloat:
		return strconv.ParseFloat(s, 64)
	case DtypeBool:
		return strconv.ParseBool(s)
	}
	return nil, fmt.Errorf("unsupported dtype %q", dtype)
}
