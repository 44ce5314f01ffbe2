// Package progress persists the learner's long-lived state: which steps
// each profile has solved, and the notes in their detective notebook.
//
// Only the pass/fail fact outlives a check - verdicts themselves are
// transient UI state and are never stored here. The store is a small
// local SQLite file, separate from the case database the learner queries.
package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrProfileNotFound is returned when a profile id has no row.
var ErrProfileNotFound = errors.New("profile not found")

// Profile identifies one learner.
type Profile struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// SolvedStep records one first-time solve.
type SolvedStep struct {
	ChapterID string
	StepID    string
	SolvedAt  time.Time
}

// Note is one notebook entry.
type Note struct {
	ID        int64
	Body      string
	CreatedAt time.Time
}

// Store is the SQLite-backed progress store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the progress database at path and applies the
// schema idempotently.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("progress store path is empty")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open progress store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure progress store: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("init progress schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			profile_id      TEXT PRIMARY KEY,
			name            TEXT NOT NULL UNIQUE,
			created_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS solved (
			profile_id     TEXT NOT NULL,
			chapter_id     TEXT NOT NULL,
			step_id        TEXT NOT NULL,
			solved_at_unix INTEGER NOT NULL,
			PRIMARY KEY (profile_id, chapter_id, step_id)
		);`,
		`CREATE TABLE IF NOT EXISTS notes (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			profile_id      TEXT NOT NULL,
			body            TEXT NOT NULL,
			created_at_unix INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_notes_profile ON notes(profile_id, id);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// EnsureProfile returns the profile with the given name, creating it on
// first use. Names are case-insensitive and trimmed.
func (s *Store) EnsureProfile(ctx context.Context, name string) (Profile, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	if norm == "" {
		return Profile{}, errors.New("profile name is empty")
	}

	var p Profile
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT profile_id, name, created_at_unix FROM profiles WHERE name = ?`, norm,
	).Scan(&p.ID, &p.Name, &createdAt)
	if err == nil {
		p.CreatedAt = time.Unix(createdAt, 0).UTC()
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Profile{}, err
	}

	p = Profile{ID: uuid.NewString(), Name: norm, CreatedAt: s.now().UTC().Truncate(time.Second)}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (profile_id, name, created_at_unix) VALUES (?, ?, ?)`,
		p.ID, p.Name, p.CreatedAt.Unix(),
	)
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

// MarkSolved records a solve. The first solve wins; re-solving a step is
// a no-op so SolvedAt always reflects the first success.
func (s *Store) MarkSolved(ctx context.Context, profileID, chapterID, stepID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO solved (profile_id, chapter_id, step_id, solved_at_unix)
		 VALUES (?, ?, ?, ?)`,
		profileID, chapterID, stepID, s.now().UTC().Unix(),
	)
	return err
}

// IsSolved reports whether the profile has solved the step.
func (s *Store) IsSolved(ctx context.Context, profileID, chapterID, stepID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM solved WHERE profile_id = ? AND chapter_id = ? AND step_id = ?`,
		profileID, chapterID, stepID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Solved lists every solved step for the profile in solve order.
func (s *Store) Solved(ctx context.Context, profileID string) ([]SolvedStep, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT chapter_id, step_id, solved_at_unix FROM solved
		 WHERE profile_id = ? ORDER BY solved_at_unix, chapter_id, step_id`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []SolvedStep
	for rows.Next() {
		var st SolvedStep
		var at int64
		if err := rows.Scan(&st.ChapterID, &st.StepID, &at); err != nil {
			return nil, err
		}
		st.SolvedAt = time.Unix(at, 0).UTC()
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

// AddNote appends a notebook entry.
func (s *Store) AddNote(ctx context.Context, profileID, body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return errors.New("note body is empty")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (profile_id, body, created_at_unix) VALUES (?, ?, ?)`,
		profileID, body, s.now().UTC().Unix(),
	)
	return err
}

// Notes lists the profile's notebook in entry order.
func (s *Store) Notes(ctx context.Context, profileID string) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, body, created_at_unix FROM notes WHERE profile_id = ? ORDER BY id`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		var at int64
		if err := rows.Scan(&n.ID, &n.Body, &at); err != nil {
			return nil, err
		}
		n.CreatedAt = time.Unix(at, 0).UTC()
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
