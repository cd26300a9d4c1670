package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"apptcal/internal/appt"
	"apptcal/internal/config"
)

const driverName = "sqlite3"

// Store is the local-mode appointment source backed by SQLite. It
// satisfies appt.Service so the UI cannot tell it from the REST client.
type Store struct {
	db   *sql.DB
	path string
}

// Open bootstraps the SQLite store at the default path.
func Open(ctx context.Context) (*Store, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return OpenPath(ctx, filepath.Join(dir, "apptcal.db"))
}

// OpenPath bootstraps the SQLite store at an explicit path.
func OpenPath(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &Store{db: db, path: path}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases DB resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmt := `CREATE TABLE IF NOT EXISTS appointments (
        id TEXT PRIMARY KEY,
        title TEXT NOT NULL,
        start_at TEXT NOT NULL,
        end_at TEXT NOT NULL,
        status TEXT,
        assignee_id TEXT,
        contact_name TEXT,
        location TEXT,
        color TEXT,
        recurrence TEXT,
        created_at TEXT NOT NULL
    );`
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// List returns appointments whose start falls within the closed day
// interval [start, end], optionally filtered by assignee, ordered by
// start time ascending.
func (s *Store) List(ctx context.Context, start, end time.Time, assignee string) ([]appt.Appointment, error) {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	to := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, 1)

	query := `SELECT id, title, start_at, end_at, status, assignee_id, contact_name, location, color, recurrence
        FROM appointments WHERE start_at >= ? AND start_at < ?`
	args := []interface{}{from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339)}
	if assignee != "" {
		query += ` AND assignee_id = ?`
		args = append(args, assignee)
	}
	query += ` ORDER BY start_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()

	var out []appt.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments rows: %w", err)
	}
	return out, nil
}

// Create persists a new appointment, minting an id when absent.
func (s *Store) Create(ctx context.Context, draft appt.Appointment) (appt.Appointment, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return appt.Appointment{}, fmt.Errorf("appointment title required")
	}
	if !draft.Valid() {
		return appt.Appointment{}, fmt.Errorf("appointment start must precede end")
	}
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO appointments
        (id, title, start_at, end_at, status, assignee_id, contact_name, location, color, recurrence, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		draft.ID, strings.TrimSpace(draft.Title),
		draft.Start.UTC().Format(time.RFC3339), draft.End.UTC().Format(time.RFC3339),
		nullString(draft.Status), nullString(draft.AssigneeID), nullString(draft.ContactName),
		nullString(draft.Location), nullString(draft.Color), nullString(draft.Recurrence),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return appt.Appointment{}, fmt.Errorf("insert appointment: %w", err)
	}
	return draft, nil
}

// Detail retrieves a single appointment by id.
func (s *Store) Detail(ctx context.Context, id string) (*appt.Appointment, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, start_at, end_at, status, assignee_id, contact_name, location, color, recurrence
        FROM appointments WHERE id = ?`, id)
	a, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appt.ErrNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &a, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(rs rowScanner) (appt.Appointment, error) {
	var a appt.Appointment
	var startAt, endAt string
	var status, assignee, contact, location, color, recurrence sql.NullString
	if err := rs.Scan(&a.ID, &a.Title, &startAt, &endAt, &status, &assignee, &contact, &location, &color, &recurrence); err != nil {
		return appt.Appointment{}, err
	}
	if t, err := time.Parse(time.RFC3339, startAt); err == nil {
		a.Start = t
	}
	if t, err := time.Parse(time.RFC3339, endAt); err == nil {
		a.End = t
	}
	a.Status = nullStringToString(status)
	a.AssigneeID = nullStringToString(assignee)
	a.ContactName = nullStringToString(contact)
	a.Location = nullStringToString(location)
	a.Color = nullStringToString(color)
	a.Recurrence = nullStringToString(recurrence)
	return a, nil
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullString(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}
