package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/tock/internal/models"
	"github.com/thenoetrevino/tock/internal/types"
)

const timeLayout = time.RFC3339Nano

const (
	settingName  = "name"
	settingEmail = "email"
)

const counterNextEntry = "next_entry_id"


// Repository persists whole sessions to SQLite. Every LoadAll and SaveAll
// runs in a single transaction.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository wrapping the given database connection
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Open initializes the database at path and returns a repository over it
func Open(ctx context.Context, path string) (*Repository, error) {
	db, err := InitDB(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewRepository(db), nil
}

// Close closes the underlying database
func (r *Repository) Close() error {
	return r.db.Close()
}

// LoadAll reads the stored session
func (r *Repository) LoadAll(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return snap, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	if snap.Settings, err = loadSettings(ctx, tx); err != nil {
		return snap, err
	}
	if snap.Projects, err = loadProjects(ctx, tx); err != nil {
		return snap, err
	}
	if snap.Tasks, err = loadTasks(ctx, tx); err != nil {
		return snap, err
	}
	if snap.Entries, err = loadEntries(ctx, tx); err != nil {
		return snap, err
	}
	if snap.NextEntryID, err = loadNextEntryID(ctx, tx); err != nil {
		return snap, err
	}

	if err := tx.Commit(); err != nil {
		return snap, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return snap, nil
}

// SaveAll replaces the stored session with snap. On error nothing changes.
func (r *Repository) SaveAll(ctx context.Context, snap models.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid snapshot: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	for _, table := range []string{"time_entries", "tasks", "projects", "settings", "counters"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := saveSettings(ctx, tx, snap.Settings); err != nil {
		return err
	}
	for _, p := range snap.Projects {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
			p.ID.ToInt(), p.Name, p.Description, formatTime(p.CreatedAt),
		); err != nil {
			return fmt.Errorf("failed to insert project %d: %w", p.ID, err)
		}
	}
	for _, t := range snap.Tasks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (id, project_id, name, description, created_at) VALUES (?, ?, ?, ?, ?)`,
			t.ID.ToInt(), t.ProjectID.ToInt(), t.Name, t.Description, formatTime(t.CreatedAt),
		); err != nil {
			return fmt.Errorf("failed to insert task %d: %w", t.ID, err)
		}
	}
	for i, e := range snap.Entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO time_entries (id, position, description, project_id, task_id, start_time, end_time, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID.ToInt(), i, e.Description,
			nullProject(e.ProjectID), nullTask(e.TaskID),
			formatTime(e.Start), nullTime(e.End), formatTime(e.CreatedAt),
		); err != nil {
			return fmt.Errorf("failed to insert entry %d: %w", e.ID, err)
		}
	}
	if snap.NextEntryID > 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO counters (name, value) VALUES (?, ?)`,
			counterNextEntry, snap.NextEntryID.ToInt(),
		); err != nil {
			return fmt.Errorf("failed to save next entry id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ============================================================================
// Readers
// ============================================================================

func loadSettings(ctx context.Context, tx *sql.Tx) (models.Settings, error) {
	var s models.Settings
	rows, err := tx.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return s, fmt.Errorf("failed to query settings: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return s, fmt.Errorf("failed to scan setting: %w", err)
		}
		switch key {
		case settingName:
			s.Name = value
		case settingEmail:
			s.Email = value
		}
	}
	return s, rows.Err()
}

func loadProjects(ctx context.Context, tx *sql.Tx) ([]models.Project, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, name, description, created_at FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer closeRows(rows)

	var projects []models.Project
	for rows.Next() {
		var (
			p       models.Project
			id      int
			created string
		)
		if err := rows.Scan(&id, &p.Name, &p.Description, &created); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p.ID = types.ProjectID(id)
		if p.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("project %d: %w", id, err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func loadTasks(ctx context.Context, tx *sql.Tx) ([]models.Task, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, project_id, name, description, created_at FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer closeRows(rows)

	var tasks []models.Task
	for rows.Next() {
		var (
			t             models.Task
			id, projectID int
			created       string
		)
		if err := rows.Scan(&id, &projectID, &t.Name, &t.Description, &created); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.ID = types.TaskID(id)
		t.ProjectID = types.ProjectID(projectID)
		if t.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("task %d: %w", id, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func loadEntries(ctx context.Context, tx *sql.Tx) ([]models.TimeEntry, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, description, project_id, task_id, start_time, end_time, created_at
		FROM time_entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer closeRows(rows)

	var entries []models.TimeEntry
	for rows.Next() {
		var (
			e              models.TimeEntry
			id             int
			projectID      sql.NullInt64
			taskID         sql.NullInt64
			start, created string
			end            sql.NullString
		)
		if err := rows.Scan(&id, &e.Description, &projectID, &taskID, &start, &end, &created); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.ID = types.EntryID(id)
		if projectID.Valid {
			e.ProjectID = types.ProjectRef(types.ProjectID(projectID.Int64))
		}
		if taskID.Valid {
			e.TaskID = types.TaskRef(types.TaskID(taskID.Int64))
		}
		if e.Start, err = parseTime(start); err != nil {
			return nil, fmt.Errorf("entry %d: %w", id, err)
		}
		if end.Valid {
			t, err := parseTime(end.String)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", id, err)
			}
			e.End = &t
		}
		if e.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("entry %d: %w", id, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func loadNextEntryID(ctx context.Context, tx *sql.Tx) (types.EntryID, error) {
	var next int
	err := tx.QueryRowContext(ctx, `SELECT value FROM counters WHERE name = ?`, counterNextEntry).Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query next entry id: %w", err)
	}
	return types.EntryID(next), nil
}

// ============================================================================
// Helpers
// ============================================================================

func saveSettings(ctx context.Context, tx *sql.Tx, s models.Settings) error {
	values := map[string]string{settingName: s.Name, settingEmail: s.Email}
	for key, value := range values {
		if value == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q: %w", s, err)
	}
	return t, nil
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func nullProject(id *types.ProjectID) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}

func nullTask(id *types.TaskID) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Error("failed to rollback transaction", "error", err)
	}
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		slog.Error("failed to close rows", "error", err)
	}
}
