package audformat

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalid marks a database that violates its own declarations.
var ErrInvalid = errors.New("invalid database")

const (
	UsageUnrestricted = "unrestricted"
	UsageCommercial   = "commercial"
	UsageResearch     = "research"
	UsageRestricted   = "restricted"
)

const (
	RaterHuman   = "human"
	RaterMachine = "machine"
)

type Media struct {
	Type         string `yaml:"type"`
	Format       string `yaml:"format,omitempty"`
	SamplingRate int    `yaml:"sampling_rate,omitempty"`
	Channels     int    `yaml:"channels,omitempty"`
	BitDepth     int    `yaml:"bit_depth,omitempty"`
}

type Rater struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
}

type Database struct {
	Name        string
	Source      string
	Usage       string
	Languages   []string
	Description string
	Meta        map[string]string

	Media      map[string]Media
	Raters     map[string]Rater
	Schemes    map[string]*Scheme
	Tables     map[string]*Table
	MiscTables map[string]*Table
}

func New(name, source, usage string, languages ...string) *Database {
	return &Database{
		Name:       name,
		Source:     source,
		Usage:      usage,
		Languages:  languages,
		Meta:       map[string]string{},
		Media:      map[string]Media{},
		Raters:     map[string]Rater{},
		Schemes:    map[string]*Scheme{},
		Tables:     map[string]*Table{},
		MiscTables: map[string]*Table{},
	}
}

// Table returns the filewise or misc table with the given id.
func (db *Database) Table(id string) (*Table, bool) {
	if t, ok := db.Tables[id]; ok {
		return t, true
	}
	t, ok := db.MiscTables[id]
	return t, ok
}

// AddTable registers a filewise table.
func (db *Database) AddTable(id string, t *Table) error {
	if !t.Filewise() {
		return fmt.Errorf("table %s: index %q is not filewise", id, t.Index.Name)
	}
	if _, dup := db.Table(id); dup {
		return fmt.Errorf("table %s already exists", id)
	}
	db.Tables[id] = t
	return nil
}

// AddMiscTable registers a table indexed by something other than files.
func (db *Database) AddMiscTable(id string, t *Table) error {
	if t.Filewise() {
		return fmt.Errorf("misc table %s: index must not be %q", id, FileLevel)
	}
	if _, dup := db.Table(id); dup {
		return fmt.Errorf("table %s already exists", id)
	}
	db.MiscTables[id] = t
	return nil
}

// Files returns the sorted union of all filewise table indices.
func (db *Database) Files() []string {
	seen := map[string]struct{}{}
	for _, t := range db.Tables {
		for _, v := range t.Index.Values {
			if s, ok := v.(string); ok {
				seen[s] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
