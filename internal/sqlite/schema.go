package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/petar-djukic/foodblog/pkg/types"
)

// Schema DDL for all tables. Every statement is idempotent.
const (
	createMeals = `CREATE TABLE IF NOT EXISTS meals (
    meal_id INTEGER PRIMARY KEY,
    meal_name TEXT NOT NULL UNIQUE
);`

	createIngredients = `CREATE TABLE IF NOT EXISTS ingredients (
    ingredient_id INTEGER PRIMARY KEY,
    ingredient_name TEXT NOT NULL UNIQUE
);`

	createMeasures = `CREATE TABLE IF NOT EXISTS measures (
    measure_id INTEGER PRIMARY KEY,
    measure_name TEXT UNIQUE
);`

	createRecipes = `CREATE TABLE IF NOT EXISTS recipes (
    recipe_id INTEGER PRIMARY KEY,
    recipe_name TEXT NOT NULL,
    recipe_description TEXT
);`

	createServe = `CREATE TABLE IF NOT EXISTS serve (
    serve_id INTEGER PRIMARY KEY AUTOINCREMENT,
    recipe_id INTEGER NOT NULL,
    meal_id INTEGER NOT NULL,
    CONSTRAINT fk_recipe FOREIGN KEY (recipe_id) REFERENCES recipes(recipe_id),
    CONSTRAINT fk_meal FOREIGN KEY (meal_id) REFERENCES meals(meal_id)
);`

	createQuantity = `CREATE TABLE IF NOT EXISTS quantity (
    quantity_id INTEGER PRIMARY KEY AUTOINCREMENT,
    quantity INTEGER NOT NULL,
    recipe_id INTEGER NOT NULL,
    measure_id INTEGER NOT NULL,
    ingredient_id INTEGER NOT NULL,
    CONSTRAINT fk_measure FOREIGN KEY (measure_id) REFERENCES measures(measure_id),
    CONSTRAINT fk_ingredient FOREIGN KEY (ingredient_id) REFERENCES ingredients(ingredient_id),
    CONSTRAINT fk_recipe_qt FOREIGN KEY (recipe_id) REFERENCES recipes(recipe_id)
);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createMeals,
	createIngredients,
	createMeasures,
	createRecipes,
	createServe,
	createQuantity,
}

// EnsureSchema creates any missing table. All statements run in one
// transaction: on failure no table from this call is left behind.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.withDB(ctx, "ensure schema", func(db *sql.DB) error {
		return ensureSchema(ctx, db)
	})
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	err := runTx(ctx, db, func(tx *sql.Tx) error {
		for _, ddl := range schemaDDL {
			if _, err := tx.ExecContext(ctx, ddl); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// ResetReferenceTables deletes every row from meals, ingredients and
// measures. Recipe, serve and quantity rows are not touched.
//
// Foreign-key enforcement is suspended while the rows are deleted, so
// recipes that reference seeded rows do not block the reset. Re-seeding the
// same values in the same order gives them the same ids again.
func (s *Store) ResetReferenceTables(ctx context.Context) error {
	return s.withDB(ctx, "reset reference tables", func(db *sql.DB) error {
		return withForeignKeysOff(ctx, db, func(tx *sql.Tx) error {
			return clearReferenceTables(ctx, tx)
		})
	})
}

func clearReferenceTables(ctx context.Context, tx *sql.Tx) error {
	for _, table := range types.ReferenceTableNames {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// withForeignKeysOff runs fn in a transaction on a dedicated connection with
// foreign-key enforcement off. The pragma is a no-op inside a transaction, so
// it is set on the connection before BEGIN and restored after COMMIT.
func withForeignKeysOff(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("disabling foreign keys: %w", err)
	}
	defer func() {
		// The connection goes back to the pool, so enforcement must come back
		// even when ctx is already done.
		if _, rerr := conn.ExecContext(context.WithoutCancel(ctx), "PRAGMA foreign_keys = ON"); rerr != nil {
			err = errors.Join(err, fmt.Errorf("enabling foreign keys: %w", rerr))
		}
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// TableNames returns the user tables present in the store, sorted by name.
func (s *Store) TableNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.withDB(ctx, "list tables", func(db *sql.DB) error {
		names = names[:0]
		rows, err := db.QueryContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return err
			}
			names = append(names, name)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	return names, nil
}
