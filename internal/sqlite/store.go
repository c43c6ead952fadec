// Package sqlite implements the recipe catalog on an embedded SQLite store.
//
// A Store owns one database handle. Every operation probes the handle before
// use and transparently reopens it from the configured path when it has gone
// stale; an operation that fails because the handle closed underneath it is
// retried once. Operations never close the handle themselves: callers either
// Close the store or scope it with WithSession.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/petar-djukic/foodblog/pkg/types"
)

// probeQuery is a trivial introspection query used to check handle validity.
const probeQuery = "SELECT name FROM sqlite_temp_master WHERE type='table'"

// Store implements types.Catalog on SQLite.
type Store struct {
	config  types.Config
	log     *slog.Logger
	db      *sql.DB
	session string
}

var _ types.Catalog = (*Store)(nil)

// Open opens the store at cfg.Path. The file is created if it does not
// exist; the schema is not touched (see EnsureSchema).
// Returns ErrPathRequired if the path is empty.
func Open(ctx context.Context, cfg types.Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()

	id := uuid.NewString()
	s := &Store{
		config:  cfg,
		log:     cfg.Logger.With("store_session", id),
		session: id,
	}
	if err := s.connect(ctx); err != nil {
		return nil, err
	}
	s.log.Info("store opened", "path", cfg.Path)
	return s, nil
}

// WithSession opens a store, runs fn and closes the store afterwards, on
// every exit path. A close error is joined to the error returned by fn.
func WithSession(ctx context.Context, cfg types.Config, fn func(*Store) error) (err error) {
	s, err := Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing store: %w", cerr))
		}
	}()
	return fn(s)
}

// Path returns the database file the store was opened with.
func (s *Store) Path() string {
	return s.config.Path
}

// SessionID identifies this store handle in log output.
func (s *Store) SessionID() string {
	return s.session
}

// Close releases the database handle. Close is idempotent. A closed store
// reopens on its next operation.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.log.Debug("store closed")
	return err
}

// connect opens the database handle and checks it with a ping.
func (s *Store) connect(ctx context.Context) error {
	dsn := buildDSN(s.config.Path, storePragmas)
	s.log.Debug("opening database", "dsn", dsn)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.config.Path, err)
	}

	// One connection keeps pragmas and the file lock in a single session.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping %s: %w", s.config.Path, err)
	}

	s.db = db
	return nil
}

// reopen discards the current handle and connects again from the last-known
// path.
func (s *Store) reopen(ctx context.Context) error {
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
	if err := s.connect(ctx); err != nil {
		return fmt.Errorf("reopening store: %w", err)
	}
	s.log.Debug("store reopened", "path", s.config.Path)
	return nil
}

// probe checks that the handle can still run a query.
func (s *Store) probe(ctx context.Context) error {
	if s.db == nil {
		return types.ErrStaleHandle
	}
	rows, err := s.db.QueryContext(ctx, probeQuery)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrStaleHandle, err)
	}
	return rows.Close()
}

// withDB runs fn against a validated handle. A stale handle is reopened
// before fn runs, and fn is retried once if it fails with a stale-handle
// error. Any other error is returned unchanged.
func (s *Store) withDB(ctx context.Context, op string, fn func(db *sql.DB) error) error {
	if err := s.probe(ctx); err != nil {
		s.log.Debug("store handle is stale", "op", op, "error", err)
		if err := s.reopen(ctx); err != nil {
			return err
		}
	}

	err := fn(s.db)
	if err == nil || !isStaleHandle(err) {
		return err
	}

	s.log.Warn("store handle went stale during operation, retrying", "op", op, "error", err)
	if rerr := s.reopen(ctx); rerr != nil {
		return errors.Join(err, rerr)
	}
	return fn(s.db)
}

// inTx runs fn inside a transaction on a validated handle. The transaction
// commits when fn returns nil and rolls back otherwise.
func (s *Store) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	return s.withDB(ctx, op, func(db *sql.DB) error {
		return runTx(ctx, db, fn)
	})
}

// runTx is the transaction body shared by inTx and schema creation.
func runTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// isStaleHandle reports whether err means the handle can no longer be used.
// database/sql does not export its closed-database error, so the message is
// matched as well.
func isStaleHandle(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, types.ErrStaleHandle),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, driver.ErrBadConn):
		return true
	default:
		return strings.Contains(err.Error(), "database is closed")
	}
}
