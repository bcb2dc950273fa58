// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package catalog provides read access to the tours, cars, accommodations and
// events the booking forms refer to.
package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/wneessen/tour-mailer/internal/cache"
	"github.com/wneessen/tour-mailer/internal/forms"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

var (
	ErrNotFound    = errors.New("catalog entry not found")
	ErrUnknownKind = errors.New("unknown catalog kind")
)

// tables maps the entity kinds of the booking forms to their table
var tables = map[string]string{
	forms.EntityTour:          "tours",
	forms.EntityCar:           "cars",
	forms.EntityAccommodation: "accommodations",
	forms.EntityEvent:         "events",
}

// Entry is a single catalog item.
type Entry struct {
	ID     string `db:"id" json:"id"`
	Slug   string `db:"slug" json:"slug"`
	Name   string `db:"name" json:"name"`
	Active bool   `db:"active" json:"active"`
}

// Store reads catalog entries from a SQL database.
type Store struct {
	db    *sqlx.DB
	cache *cache.Cache[Entry]
}

type Option func(*Store)

// WithCacheTTL keeps looked up entries in memory for ttl. A ttl of zero
// disables the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.cache = cache.New[Entry](ttl)
		}
	}
}

// NewStore returns a Store that uses an already opened database.
func NewStore(db *sqlx.DB, opts ...Option) *Store {
	store := &Store{db: db}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Open connects to the SQLite database at dsn and applies all pending
// migrations.
func Open(dsn string, opts ...Option) (*Store, error) {
	db, err := sqlx.Connect("sqlite", fmt.Sprintf("%s?_journal=WAL&_timeout=5000", dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err = goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err = goose.Up(db.DB, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply catalog migrations: %w", err)
	}
	return NewStore(db, opts...), nil
}

func (s *Store) Close() error {
	if s.cache != nil {
		s.cache.Stop()
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close catalog database: %w", err)
	}
	return nil
}

// Get returns the active entry of the given kind whose id or slug matches ref.
func (s *Store) Get(ctx context.Context, kind, ref string) (Entry, error) {
	table, ok := tables[kind]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	key := kind + ":" + ref
	if s.cache != nil {
		if entry, ok := s.cache.Get(key); ok {
			return entry, nil
		}
	}

	var entry Entry
	query := `SELECT id, slug, name, active FROM ` + table + ` WHERE (id = ? OR slug = ?) AND active = 1 LIMIT 1`
	err := s.db.GetContext(ctx, &entry, query, ref, ref)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Entry{}, fmt.Errorf("%w: %s %q", ErrNotFound, kind, ref)
	case err != nil:
		return Entry{}, fmt.Errorf("failed to look up %s %q: %w", kind, ref, err)
	}
	if s.cache != nil {
		s.cache.Set(key, entry)
	}
	return entry, nil
}

// List returns all active entries of the given kind ordered by name.
func (s *Store) List(ctx context.Context, kind string) ([]Entry, error) {
	table, ok := tables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	entries := make([]Entry, 0)
	query := `SELECT id, slug, name, active FROM ` + table + ` WHERE active = 1 ORDER BY name`
	if err := s.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list %s entries: %w", kind, err)
	}
	return entries, nil
}

// Put inserts or replaces an entry of the given kind.
func (s *Store) Put(ctx context.Context, kind string, entry Entry) error {
	table, ok := tables[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	query := `INSERT INTO ` + table + ` (id, slug, name, active) VALUES (:id, :slug, :name, :active)
		ON CONFLICT(id) DO UPDATE SET slug = excluded.slug, name = excluded.name, active = excluded.active`
	if _, err := s.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("failed to store %s %q: %w", kind, entry.ID, err)
	}
	// entries are cached by id and slug
	if s.cache != nil {
		s.cache.Clear()
	}
	return nil
}

// Resolve fills in the display name of the catalog entity a submission refers
// to. Submissions without an entity reference, or with a name but no id, are
// left untouched.
func (s *Store) Resolve(ctx context.Context, sub forms.Submission) error {
	ref, ok := sub.(forms.EntityRef)
	if !ok {
		return nil
	}
	kind, id := ref.Entity()
	if id == "" {
		return nil
	}
	entry, err := s.Get(ctx, kind, id)
	if err != nil {
		return err
	}
	ref.SetEntityName(entry.Name)
	return nil
}
