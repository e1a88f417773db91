/*
Package sqlite provides the SQLite-backed people.Store.

PURPOSE:
  Production persistence for personnel records. The same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLE:
  people:
    id          TEXT PRIMARY KEY (uuid, assigned on Add)
    name        TEXT NOT NULL
    alias       TEXT
    email       TEXT NOT NULL UNIQUE COLLATE NOCASE
    birthday    TEXT (ISO-8601 date)
    start_date  TEXT (ISO-8601 date)
    interests   TEXT (JSON array; order and duplicates preserved)
    created_at  TEXT (RFC3339)

ORDERING:
  ListAll returns rows in rowid order, i.e. insertion order. The event
  evaluator and API impose no further sorting.

FAILURE SEMANTICS:
  ListAll skips a row it cannot scan or parse, logging a warning with the
  cause. One corrupt row never hides the rest of the roster from the daily
  batch. Single-record reads (GetByID, GetByEmail) still surface the error
  for that record.

WAL MODE:
  Opened with WAL journaling and foreign keys on, matching how the rest of
  our services configure SQLite.

USAGE:
  st, err := sqlite.Open("./office_cheer.db", log)
  if err != nil { ... }
  defer st.Close()

SEE ALSO:
  - people/store.go: Interface definition
  - people/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/warp/office-cheer/calendar"
	"github.com/warp/office-cheer/people"
)

// Store implements people.Store using SQLite.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
	mu  sync.RWMutex
}

// Open creates a SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func Open(dbPath string, log zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, log: log.With().Str("component", "sqlite").Logger()}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS people (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		alias TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL UNIQUE COLLATE NOCASE,
		birthday TEXT NOT NULL,
		start_date TEXT NOT NULL,
		interests TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_people_email ON people(email);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PEOPLE.STORE IMPLEMENTATION
// =============================================================================

func (s *Store) Add(ctx context.Context, p people.Person) (people.Person, error) {
	if err := p.Validate(); err != nil {
		return people.Person{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()

	interests, err := json.Marshal(emptyIfNil(p.Interests))
	if err != nil {
		return people.Person{}, &people.StoreError{Op: "add", Err: err}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO people (id, name, alias, email, birthday, start_date, interests, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Alias, p.Email,
		p.Birthday.String(), p.StartDate.String(),
		string(interests), p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueEmailViolation(err) {
			return people.Person{}, people.ErrDuplicateEmail
		}
		return people.Person{}, &people.StoreError{Op: "add", Err: err}
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (people.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryOne(ctx, `SELECT `+personColumns+` FROM people WHERE id = ?`, id)
}

func (s *Store) GetByEmail(ctx context.Context, email string) (people.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryOne(ctx, `SELECT `+personColumns+` FROM people WHERE email = ? COLLATE NOCASE`, email)
}

func (s *Store) Update(ctx context.Context, id string, upd people.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.queryOne(ctx, `SELECT `+personColumns+` FROM people WHERE id = ?`, id)
	if err != nil {
		return err
	}

	merged, err := upd.Apply(current)
	if err != nil {
		return err
	}

	interests, err := json.Marshal(emptyIfNil(merged.Interests))
	if err != nil {
		return &people.StoreError{Op: "update", Err: err}
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE people
		SET name = ?, alias = ?, email = ?, birthday = ?, start_date = ?, interests = ?
		WHERE id = ?`,
		merged.Name, merged.Alias, merged.Email,
		merged.Birthday.String(), merged.StartDate.String(),
		string(interests), id,
	)
	if err != nil {
		if isUniqueEmailViolation(err) {
			return people.ErrDuplicateEmail
		}
		return &people.StoreError{Op: "update", Err: err}
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, id)
	if err != nil {
		return &people.StoreError{Op: "delete", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &people.StoreError{Op: "delete", Err: err}
	}
	if affected == 0 {
		return people.ErrNotFound
	}
	return nil
}

func (s *Store) ListAll(ctx context.Context) ([]people.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT rowid, `+personColumns+` FROM people ORDER BY rowid`)
	if err != nil {
		return nil, &people.StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	var result []people.Person
	for rows.Next() {
		var rowid int64
		p, err := scanPersonWithRowid(rows, &rowid)
		if err != nil {
			// A corrupt row must not hide the rest of the roster.
			s.log.Warn().Err(err).Int64("rowid", rowid).
				Msg("skipping unreadable record")
			continue
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// =============================================================================
// SCANNING
// =============================================================================

const personColumns = `id, name, alias, email, birthday, start_date, interests, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) queryOne(ctx context.Context, query string, arg any) (people.Person, error) {
	p, err := scanPerson(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return people.Person{}, people.ErrNotFound
	}
	if err != nil {
		return people.Person{}, &people.StoreError{Op: "get", Err: err}
	}
	return p, nil
}

// personRow holds the raw column values of one row before parsing.
type personRow struct {
	p people.Person

	birthday, startDate, interests, createdAt string
}

func (r *personRow) dests() []any {
	return []any{
		&r.p.ID, &r.p.Name, &r.p.Alias, &r.p.Email,
		&r.birthday, &r.startDate, &r.interests, &r.createdAt,
	}
}

func (r *personRow) parse() (people.Person, error) {
	p := r.p
	var err error

	if p.Birthday, err = calendar.Parse(r.birthday); err != nil {
		return people.Person{}, fmt.Errorf("birthday: %w", err)
	}
	if p.StartDate, err = calendar.Parse(r.startDate); err != nil {
		return people.Person{}, fmt.Errorf("start_date: %w", err)
	}
	if err = json.Unmarshal([]byte(r.interests), &p.Interests); err != nil {
		return people.Person{}, fmt.Errorf("interests: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, r.createdAt); err != nil {
		return people.Person{}, fmt.Errorf("created_at: %w", err)
	}
	return p, nil
}

func scanPerson(row rowScanner) (people.Person, error) {
	var raw personRow
	if err := row.Scan(raw.dests()...); err != nil {
		return people.Person{}, err
	}
	return raw.parse()
}

func scanPersonWithRowid(row rowScanner, rowid *int64) (people.Person, error) {
	var raw personRow
	if err := row.Scan(append([]any{rowid}, raw.dests()...)...); err != nil {
		return people.Person{}, err
	}
	return raw.parse()
}

func isUniqueEmailViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: people.email")
}

func emptyIfNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
