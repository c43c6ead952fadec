package sqlite

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/petar-djukic/foodblog/pkg/types"
)

// jsonlTables maps every table to its JSONL file and columns. Referenced
// tables come before the tables that reference them.
var jsonlTables = []struct {
	table   string
	columns []string
}{
	{types.MealsTable, []string{"meal_id", "meal_name"}},
	{types.IngredientsTable, []string{"ingredient_id", "ingredient_name"}},
	{types.MeasuresTable, []string{"measure_id", "measure_name"}},
	{types.RecipesTable, []string{"recipe_id", "recipe_name", "recipe_description"}},
	{types.ServeTable, []string{"serve_id", "recipe_id", "meal_id"}},
	{types.QuantityTable, []string{"quantity_id", "quantity", "recipe_id", "measure_id", "ingredient_id"}},
}

// jsonlFile returns the dump file of table inside dir.
func jsonlFile(dir, table string) string {
	return filepath.Join(dir, table+".jsonl")
}

// ExportJSONL writes every table to dir/<table>.jsonl, one JSON object per
// row keyed by column name. Each file is replaced atomically. Returns the
// paths written.
func (s *Store) ExportJSONL(ctx context.Context, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	var written []string
	for _, m := range jsonlTables {
		var lines []json.RawMessage
		err := s.withDB(ctx, "export", func(db *sql.DB) error {
			var err error
			lines, err = dumpTable(ctx, db, m.table, m.columns)
			return err
		})
		if err != nil {
			return written, fmt.Errorf("reading %s: %w", m.table, err)
		}
		path := jsonlFile(dir, m.table)
		if err := writeJSONL(path, lines); err != nil {
			return written, fmt.Errorf("exporting %s: %w", m.table, err)
		}
		written = append(written, path)
	}
	s.log.Info("catalog exported", "dir", dir, "files", len(written))
	return written, nil
}

// dumpTable encodes every row of table as a JSON object, ordered by the first
// column.
func dumpTable(ctx context.Context, db *sql.DB, table string, columns []string) ([]json.RawMessage, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", strings.Join(columns, ", "), table, columns[0])
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []json.RawMessage
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		obj := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				obj[col] = string(b)
				continue
			}
			obj[col] = values[i]
		}
		b, err := json.Marshal(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ImportJSONL replaces the contents of every table with the rows in
// dir/<table>.jsonl. A missing file leaves its table empty. Malformed lines
// and rows that violate a constraint are skipped. The load runs in one
// transaction with foreign keys off. Returns the number of rows loaded.
func (s *Store) ImportJSONL(ctx context.Context, dir string) (int, error) {
	loaded := 0
	err := s.withDB(ctx, "import", func(db *sql.DB) error {
		loaded = 0
		return withForeignKeysOff(ctx, db, func(tx *sql.Tx) error {
			for i := len(jsonlTables) - 1; i >= 0; i-- {
				if _, err := tx.ExecContext(ctx, "DELETE FROM "+jsonlTables[i].table); err != nil {
					return fmt.Errorf("clearing %s: %w", jsonlTables[i].table, err)
				}
			}
			for _, m := range jsonlTables {
				records, err := readJSONL(jsonlFile(dir, m.table))
				if err != nil {
					return fmt.Errorf("reading %s: %w", m.table, err)
				}
				n, err := insertRecords(ctx, tx, m.table, m.columns, records)
				if err != nil {
					return fmt.Errorf("loading %s: %w", m.table, err)
				}
				loaded += n
			}
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("importing %s: %w", dir, err)
	}
	s.log.Info("catalog imported", "dir", dir, "rows", loaded)
	return loaded, nil
}

// readJSONL returns the non-blank lines of path, whatever their length. A
// missing file yields no lines.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []json.RawMessage
	r := bufio.NewReader(f)
	for {
		raw, err := r.ReadBytes('\n')
		if line := bytes.TrimSpace(raw); len(line) > 0 {
			out = append(out, json.RawMessage(line))
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// insertRecords inserts the listed columns of each record. Fields not in
// columns are ignored and missing ones are NULL. Returns the rows inserted.
func insertRecords(ctx context.Context, tx *sql.Tx, table string, columns []string, records []json.RawMessage) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), placeholders(len(columns))))
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, rec := range records {
		var obj map[string]any
		dec := json.NewDecoder(bytes.NewReader(rec))
		dec.UseNumber()
		if err := dec.Decode(&obj); err != nil {
			continue
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = columnValue(obj[col])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			if isConstraint(err) {
				continue
			}
			return n, err
		}
		n++
	}
	return n, nil
}

// columnValue converts a decoded JSON value to a bind argument.
func columnValue(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		f, _ := v.Float64()
		return f
	case map[string]any, []any:
		b, _ := json.Marshal(v)
		return string(b)
	default:
		return v
	}
}

// writeJSONL writes records to path through a temp file that is synced and
// renamed into place.
func writeJSONL(path string, records []json.RawMessage) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
