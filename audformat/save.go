package audformat

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// TableFile returns the CSV file name of a table inside a database directory.
func TableFile(id string) string { return "db." + id + ".csv" }

// Save validates the database and writes db.yaml plus one CSV per table
// into dir, which is created if needed.
func (db *Database) Save(dir string) error {
	if err := db.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	if err := writeYAML(filepath.Join(dir, HeaderFile), db.header()); err != nil {
		return err
	}
	for id, t := range db.Tables {
		if err := writeTable(filepath.Join(dir, TableFile(id)), t); err != nil {
			return fmt.Errorf("table %s: %w", id, err)
		}
	}
	for id, t := range db.MiscTables {
		if err := writeTable(filepath.Join(dir, TableFile(id)), t); err != nil {
			return fmt.Errorf("misc table %s: %w", id, err)
		}
	}
	return nil
}

func writeYAML(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Close()
}

func writeTable(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := make([]string, 0, len(t.Columns)+1)
	record = append(record, t.Index.Name)
	for _, c := range t.Columns {
		record = append(record, c.ID)
	}
	if err := w.Write(record); err != nil {
		return err
	}
	for row, key := range t.Index.Values {
		record = record[:0]
		record = append(record, formatValue(key))
		for _, c := range t.Columns {
			record = append(record, formatValue(c.Values[row]))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
