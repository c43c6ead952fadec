package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/petar-djukic/foodblog/pkg/types"
)

// Generic record primitives. Each resolves its table through the registry
// before any SQL is built, so table and column identifiers in the query text
// always come from the registry. Values are always bound.

// InsertOne inserts a single row with the given name.
func (s *Store) InsertOne(ctx context.Context, table, value string) error {
	spec, err := types.LookupTable(table)
	if err != nil {
		return fmt.Errorf("insert into %q: %w", table, err)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?)", spec.Name, spec.NameColumn)

	return s.inTx(ctx, "insert", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, value); err != nil {
			return writeError("insert into "+spec.Name, err)
		}
		return nil
	})
}

// InsertMany inserts one row per value in a single transaction. Either all
// rows commit or none do. An empty slice is a no-op.
func (s *Store) InsertMany(ctx context.Context, table string, values []string) error {
	spec, err := types.LookupTable(table)
	if err != nil {
		return fmt.Errorf("insert into %q: %w", table, err)
	}
	if len(values) == 0 {
		return nil
	}
	err = s.inTx(ctx, "insert many", func(tx *sql.Tx) error {
		return insertNames(ctx, tx, spec, values)
	})
	if err != nil {
		return err
	}
	s.log.Debug("rows inserted", "table", spec.Name, "count", len(values))
	return nil
}

// insertNames inserts one row per value into the name column of spec
// through a prepared statement on tx.
func insertNames(ctx context.Context, tx *sql.Tx, spec types.TableSpec, values []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?)", spec.Name, spec.NameColumn)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert into %s: %w", spec.Name, err)
	}
	defer stmt.Close()

	for _, v := range values {
		if _, err := stmt.ExecContext(ctx, v); err != nil {
			return writeError(fmt.Sprintf("insert %q into %s", v, spec.Name), err)
		}
	}
	return nil
}

// UpdateName sets the name column of every row in the table to newValue.
// There is no row filter: on tables with a unique name column this fails
// with ErrConstraintViolation as soon as the table holds more than one row.
// Returns the number of rows changed.
func (s *Store) UpdateName(ctx context.Context, table, newValue string) (int64, error) {
	spec, err := types.LookupTable(table)
	if err != nil {
		return 0, fmt.Errorf("update %q: %w", table, err)
	}
	query := fmt.Sprintf("UPDATE %s SET %s = ?", spec.Name, spec.NameColumn)

	var affected int64
	err = s.inTx(ctx, "update", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, newValue)
		if err != nil {
			return writeError("update "+spec.Name, err)
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected, err
}

// DeleteByName deletes every row whose name equals value and returns the
// number of rows removed.
func (s *Store) DeleteByName(ctx context.Context, table, value string) (int64, error) {
	spec, err := types.LookupTable(table)
	if err != nil {
		return 0, fmt.Errorf("delete from %q: %w", table, err)
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", spec.Name, spec.NameColumn)

	var affected int64
	err = s.inTx(ctx, "delete", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, value)
		if err != nil {
			return writeError("delete from "+spec.Name, err)
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected, err
}

// SelectOneByName returns the first row whose name equals value.
// Returns ErrNotFound if no row matches.
func (s *Store) SelectOneByName(ctx context.Context, table, value string) (types.Record, error) {
	spec, err := types.LookupTable(table)
	if err != nil {
		return types.Record{}, fmt.Errorf("select from %q: %w", table, err)
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? LIMIT 1",
		selectColumns(spec), spec.Name, spec.NameColumn)

	var rec types.Record
	err = s.withDB(ctx, "select one", func(db *sql.DB) error {
		var err error
		rec, err = scanRecord(spec, db.QueryRowContext(ctx, query, value))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return types.Record{}, fmt.Errorf("%s %q: %w", spec.Name, value, types.ErrNotFound)
	}
	if err != nil {
		return types.Record{}, fmt.Errorf("select from %s: %w", spec.Name, err)
	}
	return rec, nil
}

// SelectAll returns every row of the table in store order. No ordering is
// imposed; for an unindexed scan this is insertion order.
func (s *Store) SelectAll(ctx context.Context, table string) ([]types.Record, error) {
	spec, err := types.LookupTable(table)
	if err != nil {
		return nil, fmt.Errorf("select from %q: %w", table, err)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", selectColumns(spec), spec.Name)

	var records []types.Record
	err = s.withDB(ctx, "select all", func(db *sql.DB) error {
		records = records[:0]
		rows, err := db.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			rec, err := scanRecord(spec, rows)
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", spec.Name, err)
	}
	return records, nil
}

// insertRow inserts one row into any table of the schema and returns its id.
// columns and values must pair up one to one.
func (s *Store) insertRow(ctx context.Context, table string, columns []string, values []any) (int64, error) {
	if len(columns) == 0 || len(columns) != len(values) {
		return 0, fmt.Errorf("insert into %s: %d columns, %d values: %w",
			table, len(columns), len(values), types.ErrArity)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), placeholders(len(values)))

	var id int64
	err := s.inTx(ctx, "insert", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, values...)
		if err != nil {
			return writeError("insert into "+table, err)
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func selectColumns(spec types.TableSpec) string {
	cols := spec.IDColumn + ", " + spec.NameColumn
	if spec.Name == types.RecipesTable {
		cols += ", recipe_description"
	}
	return cols
}

func scanRecord(spec types.TableSpec, row rowScanner) (types.Record, error) {
	var rec types.Record
	var name, desc sql.NullString

	dest := []any{&rec.ID, &name}
	if spec.Name == types.RecipesTable {
		dest = append(dest, &desc)
	}
	if err := row.Scan(dest...); err != nil {
		return types.Record{}, err
	}
	rec.Name = name.String
	rec.Description = desc.String
	return rec, nil
}

// placeholders returns n comma-separated bind markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
