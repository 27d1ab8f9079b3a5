// Package store persists named, reusable pattern definitions (source
// text plus the flags they were built with) so the REPL and CLI can
// save/load across invocations instead of retyping combinator
// expressions, using the same database/sql idiom as a typical
// sqlite-backed persistence layer: blank driver import, QueryRow/Scan,
// wrapped errors.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/mod/semver"
)

// FormatVersion is the format_version written alongside every stored
// pattern. minSupported and maxSupported bound the versions this
// binary can load.
const (
	FormatVersion = "v1.0.0"
	minSupported  = "v1.0.0"
	maxSupported  = "v1.0.0"
)

// Pattern is one row of the patterns table.
type Pattern struct {
	ID            int64
	Name          string
	Source        string
	Flags         string
	ContentHash   string
	FormatVersion string
	CreatedAt     time.Time
}

// Store wraps a sqlite-backed connection to the patterns table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS patterns (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	name           TEXT NOT NULL UNIQUE,
	source         TEXT NOT NULL,
	flags          TEXT NOT NULL DEFAULT '',
	content_hash   TEXT NOT NULL,
	format_version TEXT NOT NULL,
	created_at     DATETIME NOT NULL
);`
	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// ContentHash returns the blake2b-256 hex digest of source, the key a
// caller should compare before re-saving (spec: "re-saving identical
// source is a no-op").
func ContentHash(source string) string {
	sum := blake2b.Sum256([]byte(source))
	return fmt.Sprintf("%x", sum)
}

// Save stores source under name with the given flags string (e.g.
// "anchor,debug"). If a pattern already exists under name with an
// identical content hash, Save reports unchanged=true and does not
// write a new row; a matching name with a different hash is an error
// ("warn on silent redefinition" — the caller decides whether to
// overwrite via Delete+Save).
func (s *Store) Save(name, source, flags string) (unchanged bool, err error) {
	hash := ContentHash(source)

	existing, err := s.Load(name)
	if err == nil {
		if existing.ContentHash == hash {
			return true, nil
		}
		return false, fmt.Errorf("store: %q already exists with different source (hash %s != %s); delete it first", name, existing.ContentHash, hash)
	}
	if err != ErrNotFound {
		return false, err
	}

	_, err = s.db.Exec(
		`INSERT INTO patterns (name, source, flags, content_hash, format_version, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		name, source, flags, hash, FormatVersion, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("store: save %q: %w", name, err)
	}
	return false, nil
}

// ErrNotFound is returned by Load when name has no saved pattern.
var ErrNotFound = fmt.Errorf("store: pattern not found")

// Load retrieves the pattern saved under name, rejecting a row whose
// format_version falls outside this binary's supported range
// before the caller can misinterpret it.
func (s *Store) Load(name string) (Pattern, error) {
	row := s.db.QueryRow(
		`SELECT id, name, source, flags, content_hash, format_version, created_at FROM patterns WHERE name = ?`,
		name,
	)
	var p Pattern
	if err := row.Scan(&p.ID, &p.Name, &p.Source, &p.Flags, &p.ContentHash, &p.FormatVersion, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return Pattern{}, ErrNotFound
		}
		return Pattern{}, fmt.Errorf("store: load %q: %w", name, err)
	}
	if semver.Compare(p.FormatVersion, minSupported) < 0 || semver.Compare(p.FormatVersion, maxSupported) > 0 {
		return Pattern{}, fmt.Errorf("store: %q has format_version %s, outside supported range [%s, %s]", name, p.FormatVersion, minSupported, maxSupported)
	}
	return p, nil
}

// Delete removes the pattern saved under name. It is not an error to
// delete a name that does not exist.
func (s *Store) Delete(name string) error {
	_, err := s.db.Exec(`DELETE FROM patterns WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", name, err)
	}
	return nil
}

// List returns every saved pattern's name and creation time, ordered
// by name, for a REPL ":history"/"list" command.
func (s *Store) List() ([]Pattern, error) {
	rows, err := s.db.Query(`SELECT id, name, source, flags, content_hash, format_version, created_at FROM patterns ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var out []Pattern
	for rows.Next() {
		var p Pattern
		if err := rows.Scan(&p.ID, &p.Name, &p.Source, &p.Flags, &p.ContentHash, &p.FormatVersion, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
