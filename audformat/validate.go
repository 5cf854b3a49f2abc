package audformat

import (
	"errors"
	"fmt"
)

// Validate checks references between tables, schemes and raters, index
// uniqueness, column lengths, and every value against its scheme. All
// problems are joined into one error wrapping ErrInvalid.
func (db *Database) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if db.Name == "" {
		add("database has no name")
	}
	for _, id := range sortedKeys(db.Schemes) {
		s := db.Schemes[id]
		if err := checkDtype(s.Dtype, zeroOf(s.Dtype)); err != nil {
			add("scheme %s: %v", id, err)
		}
		if s.Labels.Table != "" {
			t, ok := db.MiscTables[s.Labels.Table]
			if !ok {
				add("scheme %s: labels table %q does not exist", id, s.Labels.Table)
			} else if t.Index.Dtype != s.Dtype {
				add("scheme %s: dtype %s does not match table %q index dtype %s", id, s.Dtype, s.Labels.Table, t.Index.Dtype)
			}
		}
	}

	check := func(kind, id string, t *Table) {
		seen := make(map[any]struct{}, t.Len())
		for _, v := range t.Index.Values {
			if err := checkDtype(t.Index.Dtype, v); err != nil {
				add("%s %s: index: %v", kind, id, err)
				return
			}
			if _, dup := seen[v]; dup {
				add("%s %s: duplicate index value %v", kind, id, v)
			}
			seen[v] = struct{}{}
		}
		for _, c := range t.Columns {
			if len(c.Values) != t.Len() {
				add("%s %s: column %s has %d values for %d rows", kind, id, c.ID, len(c.Values), t.Len())
				continue
			}
			if c.RaterID != "" {
				if _, ok := db.Raters[c.RaterID]; !ok {
					add("%s %s: column %s: rater %q does not exist", kind, id, c.ID, c.RaterID)
				}
			}
			if c.SchemeID == "" {
				continue
			}
			s, ok := db.Schemes[c.SchemeID]
			if !ok {
				add("%s %s: column %s: scheme %q does not exist", kind, id, c.ID, c.SchemeID)
				continue
			}
			for i, v := range c.Values {
				if err := s.check(db, v); err != nil {
					add("%s %s: column %s: row %v: %v", kind, id, c.ID, t.Index.Values[i], err)
					break
				}
			}
		}
	}
	for _, id := range sortedKeys(db.Tables) {
		check("table", id, db.Tables[id])
	}
	for _, id := range sortedKeys(db.MiscTables) {
		check("misc table", id, db.MiscTables[id])
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

func zeroOf(dtype string) any {
	switch dtype {
	case DtypeInt:
		return 0
	case DtypeFloat:
		return 0.0
	case DtypeBool:
		return false
	}
	return ""
}
