package audformat

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// HeaderFile is the name of the YAML header inside a database directory.
const HeaderFile = "db.yaml"

type header struct {
	Name        string                     `yaml:"name"`
	Source      string                     `yaml:"source,omitempty"`
	Usage       string                     `yaml:"usage"`
	Languages   []string                   `yaml:"languages,omitempty"`
	Description string                     `yaml:"description,omitempty"`
	Meta        map[string]string          `yaml:"meta,omitempty"`
	Media       map[string]Media           `yaml:"media,omitempty"`
	Raters      map[string]Rater           `yaml:"raters,omitempty"`
	Schemes     map[string]*Scheme         `yaml:"schemes,omitempty"`
	Tables      map[string]tableHeader     `yaml:"tables,omitempty"`
	MiscTables  map[string]miscTableHeader `yaml:"misc_tables,omitempty"`
}

type tableHeader struct {
	Type        string        `yaml:"type"`
	Description string        `yaml:"description,omitempty"`
	Columns     columnHeaders `yaml:"columns,omitempty"`
}

type miscTableHeader struct {
	Levels      map[string]string `yaml:"levels"`
	Description string            `yaml:"description,omitempty"`
	Columns     columnHeaders     `yaml:"columns,omitempty"`
}

type columnHeader struct {
	ID          string `yaml:"-"`
	SchemeID    string `yaml:"scheme_id,omitempty"`
	RaterID     string `yaml:"rater_id,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// columnHeaders is written as a mapping so the column order survives.
type columnHeaders []columnHeader

func (cs columnHeaders) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range cs {
		value := &yaml.Node{}
		if err := value.Encode(c); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.ID},
			value,
		)
	}
	return node, nil
}

func (cs *columnHeaders) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("columns: expected mapping, got yaml node kind %d", value.Kind)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var c columnHeader
		if err := value.Content[i+1].Decode(&c); err != nil {
			return err
		}
		c.ID = value.Content[i].Value
		*cs = append(*cs, c)
	}
	return nil
}

func columnsOf(t *Table) columnHeaders {
	out := make(columnHeaders, 0, len(t.Columns))
	for _, c := range t.Columns {
		out = append(out, columnHeader{ID: c.ID, SchemeID: c.SchemeID, RaterID: c.RaterID, Description: c.Description})
	}
	return out
}

func (db *Database) header() header {
	h := header{
		Name:        db.Name,
		Source:      db.Source,
		Usage:       db.Usage,
		Languages:   db.Languages,
		Description: db.Description,
		Meta:        db.Meta,
		Media:       db.Media,
		Raters:      db.Raters,
		Schemes:     db.Schemes,
		Tables:      make(map[string]tableHeader, len(db.Tables)),
		MiscTables:  make(map[string]miscTableHeader, len(db.MiscTables)),
	}
	for id, t := range db.Tables {
		h.Tables[id] = tableHeader{Type: "filewise", Description: t.Description, Columns: columnsOf(t)}
	}
	for id, t := range db.MiscTables {
		h.MiscTables[id] = miscTableHeader{
			Levels:      map[string]string{t.Index.Name: t.Index.Dtype},
			Description: t.Description,
			Columns:     columnsOf(t),
		}
	}
	return h
}

// fromHeader rebuilds a database skeleton; tables have no rows yet.
func fromHeader(h header) (*Database, error) {
	db := New(h.Name, h.Source, h.Usage, h.Languages...)
	db.Description = h.Description
	for k, v := range h.Meta {
		db.Meta[k] = v
	}
	for k, v := range h.Media {
		db.Media[k] = v
	}
	for k, v := range h.Raters {
		db.Raters[k] = v
	}
	for k, v := range h.Schemes {
		db.Schemes[k] = v
	}
	for id, th := range h.Tables {
		if th.Type != "filewise" {
			return nil, fmt.Errorf("table %s: unsupported type %q", id, th.Type)
		}
		t := NewFilewiseTable(nil)
		t.Description = th.Description
		t.Columns = skeleton(th.Columns)
		db.Tables[id] = t
	}
	for id, mh := range h.MiscTables {
		if len(mh.Levels) != 1 {
			return nil, fmt.Errorf("misc table %s: want exactly one level, got %d", id, len(mh.Levels))
		}
		for level, dtype := range mh.Levels {
			t := NewMiscTable(level, dtype, nil)
			t.Description = mh.Description
			t.Columns = skeleton(mh.Columns)
			db.MiscTables[id] = t
		}
	}
	return db, nil
}

func skeleton(cs columnHeaders) []*Column {
	out := make([]*Column, 0, len(cs))
	for _, c := range cs {
		out = append(out, &Column{ID: c.ID, SchemeID: c.SchemeID, RaterID: c.RaterID, Description: c.Description})
	}
	return out
}
