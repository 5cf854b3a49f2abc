package audformat

import "fmt"

// FileLevel is the index name of filewise tables.
const FileLevel = "file"

type Index struct {
	Name   string
	Dtype  string
	Values []any
}

func (ix Index) contains(v any) bool {
	for _, x := range ix.Values {
		if x == v {
			return true
		}
	}
	return false
}

type Column struct {
	ID          string
	SchemeID    string
	RaterID     string
	Description string
	Values      []any
}

// Table holds an index and ordered columns of the same length.
type Table struct {
	Index       Index
	Description string
	Columns     []*Column
}

// NewFilewiseTable returns a table indexed by the given relative file paths.
func NewFilewiseTable(files []string) *Table {
	return &Table{Index: Index{Name: FileLevel, Dtype: DtypeStr, Values: Values(files)}}
}

// NewMiscTable returns a table indexed by a named, typed level.
func NewMiscTable(level, dtype string, keys []any) *Table {
	return &Table{Index: Index{Name: level, Dtype: dtype, Values: keys}}
}

func (t *Table) Filewise() bool { return t.Index.Name == FileLevel }

func (t *Table) Len() int { return len(t.Index.Values) }

// Column returns the column with the given id or nil.
func (t *Table) Column(id string) *Column {
	for _, c := range t.Columns {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// AddColumn declares a column and sets its values. values may be nil to
// declare an empty column, which is filled with missing values. Missing
// values are written as empty cells and Load reads every empty cell back
// as nil.
func (t *Table) AddColumn(id, schemeID, raterID string, values []any) (*Column, error) {
	if t.Column(id) != nil {
		return nil, fmt.Errorf("column %s already exists", id)
	}
	c := &Column{ID: id, SchemeID: schemeID, RaterID: raterID}
	if err := t.set(c, values); err != nil {
		return nil, err
	}
	t.Columns = append(t.Columns, c)
	return c, nil
}

// Set replaces the values of an existing column.
func (t *Table) Set(id string, values []any) error {
	c := t.Column(id)
	if c == nil {
		return fmt.Errorf("column %s does not exist", id)
	}
	return t.set(c, values)
}

func (t *Table) set(c *Column, values []any) error {
	if values == nil {
		c.Values = make([]any, t.Len())
		return nil
	}
	if len(values) != t.Len() {
		return fmt.Errorf("column %s: %d values for %d rows", c.ID, len(values), t.Len())
	}
	c.Values = values
	return nil
}

// Values converts a typed slice into column values.
func Values[T any](xs []T) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

// As converts column values back into a typed slice. Missing values become
// the zero value of T.
func As[T any](values []any) ([]T, error) {
	out := make([]T, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		x, ok := v.(T)
		if !ok {
			return nil, fmt.Errorf("value %d: %v is %T, want %T", i, v, v, x)
		}
		out[i] = x
	}
	return out, nil
}
