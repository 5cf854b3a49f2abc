package audformat

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

const (
	DtypeStr   = "str"
	DtypeInt   = "int"
	DtypeFloat = "float"
	DtypeBool  = "bool"
)

// Scheme declares the value domain of a column.
type Scheme struct {
	Dtype       string   `yaml:"dtype"`
	Labels      Labels   `yaml:"labels,omitempty"`
	Minimum     *float64 `yaml:"minimum,omitempty"`
	Maximum     *float64 `yaml:"maximum,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// Bound is a helper for Scheme.Minimum and Scheme.Maximum.
func Bound(v float64) *float64 { return &v }

// Labels restricts a scheme to a finite set of values. The set is given
// either as a plain list, as label -> description pairs, or as the id of a
// misc table whose index supplies the labels.
type Labels struct {
	Names        []string
	Descriptions map[string]string
	Table        string
}

func LabelList(names ...string) Labels {
	return Labels{Names: names}
}

// LabelDict keeps the order of names; descriptions are looked up by name.
func LabelDict(names []string, descriptions map[string]string) Labels {
	return Labels{Names: names, Descriptions: descriptions}
}

func LabelTable(id string) Labels {
	return Labels{Table: id}
}

func (l Labels) IsZero() bool {
	return l.Table == "" && len(l.Names) == 0
}

func (l Labels) MarshalYAML() (interface{}, error) {
	switch {
	case l.Table != "":
		return l.Table, nil
	case l.Descriptions != nil:
		node := &yaml.Node{Kind: yaml.MappingNode}
		for _, name := range l.Names {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: l.Descriptions[name]},
			)
		}
		return node, nil
	default:
		return l.Names, nil
	}
}

func (l *Labels) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		l.Table = value.Value
	case yaml.SequenceNode:
		return value.Decode(&l.Names)
	case yaml.MappingNode:
		l.Descriptions = make(map[string]string, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			var desc string
			if err := value.Content[i+1].Decode(&desc); err != nil {
				return err
			}
			name := value.Content[i].Value
			l.Names = append(l.Names, name)
			l.Descriptions[name] = desc
		}
	default:
		return fmt.Errorf("labels: unexpected yaml node kind %d", value.Kind)
	}
	return nil
}

// check reports whether v is acceptable for the scheme. Labels drawn from a
// misc table are resolved through db.
func (s *Scheme) check(db *Database, v any) error {
	if v == nil {
		return nil
	}
	if err := checkDtype(s.Dtype, v); err != nil {
		return err
	}
	switch {
	case s.Labels.Table != "":
		t, ok := db.MiscTables[s.Labels.Table]
		if !ok {
			return fmt.Errorf("labels table %q does not exist", s.Labels.Table)
		}
		if !t.Index.contains(v) {
			return fmt.Errorf("%v is not in table %q", v, s.Labels.Table)
		}
	case len(s.Labels.Names) > 0:
		str := fmt.Sprint(v)
		found := false
		for _, name := range s.Labels.Names {
			if name == str {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%v is not a label", v)
		}
	}
	if f, ok := asFloat(v); ok {
		if math.IsNaN(f) && (s.Minimum != nil || s.Maximum != nil) {
			return fmt.Errorf("NaN outside bounds")
		}
		if s.Minimum != nil && f < *s.Minimum {
			return fmt.Errorf("%v below minimum %v", v, *s.Minimum)
		}
		if s.Maximum != nil && f > *s.Maximum {
			return fmt.Errorf("%v above maximum %v", v, *s.Maximum)
		}
	}
	return nil
}

func checkDtype(dtype string, v any) error {
	ok := false
	switch dtype {
	case DtypeStr:
		_, ok = v.(string)
	case DtypeInt:
		_, ok = v.(int)
	case DtypeFloat:
		_, ok = v.(float64)
	case DtypeBool:
		_, ok = v.(bool)
	default:
		return fmt.Errorf("unsupported dtype %q", dtype)
	}
	if !ok {
		return fmt.Errorf("%v (%T) is not %s", v, v, dtype)
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
