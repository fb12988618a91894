package partstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/onflyair/cargofit/internal/feasibility"
)

// ErrNotFound is returned when no saved part has the requested name.
var ErrNotFound = errors.New("part not found")

// Store keeps named cargo templates for one user.
type Store interface {
	Save(ctx context.Context, item feasibility.CargoItem) error
	Get(ctx context.Context, name string) (feasibility.CargoItem, error)
	List(ctx context.Context) ([]feasibility.CargoItem, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// SQLiteStore implements Store on a local SQLite file. Several users may
// share one file; every query is scoped to the owner given at Open.
type SQLiteStore struct {
	db    *sql.DB
	owner string
}

// Open creates or opens the store at path for owner.
func Open(path, owner string) (*SQLiteStore, error) {
	if owner == "" {
		return nil, errors.New("store owner must not be empty")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{db: db, owner: owner}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS saved_parts (
		owner      TEXT NOT NULL,
		name       TEXT NOT NULL COLLATE NOCASE,
		length_in  REAL,
		width_in   REAL,
		height_in  REAL,
		weight_lbs REAL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (owner, name)
	)`)
	return err
}

// Save inserts or replaces the part with the same name.
// Unknown dimensions are stored as NULL.
func (s *SQLiteStore) Save(ctx context.Context, item feasibility.CargoItem) error {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return errors.New("part name must not be empty")
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO saved_parts
		(owner, name, length_in, width_in, height_in, weight_lbs, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(owner, name) DO UPDATE SET
			name = excluded.name,
			length_in = excluded.length_in,
			width_in = excluded.width_in,
			height_in = excluded.height_in,
			weight_lbs = excluded.weight_lbs,
			updated_at = excluded.updated_at`,
		s.owner, name,
		toNull(item.Length), toNull(item.Width), toNull(item.Height), toNull(item.Weight),
	)
	if err != nil {
		return fmt.Errorf("failed to save part %q: %w", name, err)
	}
	return nil
}

// Get loads a part by name (case-insensitive).
func (s *SQLiteStore) Get(ctx context.Context, name string) (feasibility.CargoItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT name, length_in, width_in, height_in, weight_lbs
		FROM saved_parts WHERE owner = ? AND name = ?`, s.owner, strings.TrimSpace(name))

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return feasibility.CargoItem{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return feasibility.CargoItem{}, fmt.Errorf("failed to load part %q: %w", name, err)
	}
	return item, nil
}

// List returns every saved part ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]feasibility.CargoItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, length_in, width_in, height_in, weight_lbs
		FROM saved_parts WHERE owner = ? ORDER BY name`, s.owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	defer rows.Close()

	var items []feasibility.CargoItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan part: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Delete removes a part by name.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_parts WHERE owner = ? AND name = ?`,
		s.owner, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("failed to delete part %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete part %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(sc scanner) (feasibility.CargoItem, error) {
	var (
		item                          feasibility.CargoItem
		length, width, height, weight sql.NullFloat64
	)
	if err := sc.Scan(&item.Name, &length, &width, &height, &weight); err != nil {
		return feasibility.CargoItem{}, err
	}
	item.Length = fromNull(length)
	item.Width = fromNull(width)
	item.Height = fromNull(height)
	item.Weight = fromNull(weight)
	return item, nil
}

func toNull(m feasibility.Measure) sql.NullFloat64 {
	v, ok := m.Value()
	return sql.NullFloat64{Float64: v, Valid: ok}
}

func fromNull(n sql.NullFloat64) feasibility.Measure {
	if !n.Valid {
		return feasibility.Unknown()
	}
	return feasibility.Known(n.Float64)
}
