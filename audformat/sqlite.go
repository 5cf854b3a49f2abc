package audformat

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteFile is the default name of the SQLite export inside a database
// directory.
const SQLiteFile = "db.sqlite"

// SaveSQLite writes every table into a fresh SQLite file at path, one SQL
// table per database table with the index as primary key. Schemes pick the
// column affinity.
func (db *Database) SaveSQLite(ctx context.Context, path string) error {
	if err := db.Validate(); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale %s: %w", path, err)
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range sortedKeys(db.Tables) {
		if err := db.insertTable(ctx, tx, id, db.Tables[id]); err != nil {
			return err
		}
	}
	for _, id := range sortedKeys(db.MiscTables) {
		if err := db.insertTable(ctx, tx, id, db.MiscTables[id]); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return conn.Close()
}

func (db *Database) insertTable(ctx context.Context, tx *sql.Tx, id string, t *Table) error {
	cols := make([]string, 0, len(t.Columns)+1)
	defs := make([]string, 0, len(t.Columns)+1)
	cols = append(cols, quoteIdent(t.Index.Name))
	defs = append(defs, quoteIdent(t.Index.Name)+" "+affinity(t.Index.Dtype)+" PRIMARY KEY")
	for _, c := range t.Columns {
		dtype := DtypeStr
		if s, ok := db.Schemes[c.SchemeID]; ok {
			dtype = s.Dtype
		}
		cols = append(cols, quoteIdent(c.ID))
		defs = append(defs, quoteIdent(c.ID)+" "+affinity(dtype))
	}

	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(id), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create table %s: %w", id, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(id), strings.Join(cols, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("prepare insert %s: %w", id, err)
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for row, key := range t.Index.Values {
		args[0] = key
		for i, c := range t.Columns {
			args[i+1] = c.Values[row]
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert %s row %v: %w", id, key, err)
		}
	}
	return nil
}

func affinity(dtype string) string {
	switch dtype {
	case DtypeInt, DtypeBool:
		return "INTEGER"
	case DtypeFloat:
		return "REAL"
	}
	return "TEXT"
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
