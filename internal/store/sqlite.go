// Package store persists jobs and alerts in SQLite. It is the sole mutator
// of persisted state; the core treats it as externally serializing writes.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/OctavioMinteguia/jobhub/internal/model"
)

// Ensure SQLiteStore implements model.JobStore.
var _ model.JobStore = (*SQLiteStore)(nil)

// SQLiteStore is the JobStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	company     TEXT NOT NULL,
	description TEXT NOT NULL,
	location    TEXT NOT NULL DEFAULT '',
	salary      TEXT NOT NULL DEFAULT '',
	type        TEXT NOT NULL,
	level       TEXT NOT NULL,
	tags        TEXT NOT NULL DEFAULT '[]',
	remote      INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL,
	source      TEXT NOT NULL DEFAULT 'internal'
);
CREATE TABLE IF NOT EXISTS alerts (
	id             TEXT PRIMARY KEY,
	email          TEXT NOT NULL,
	search_pattern TEXT NOT NULL DEFAULT '',
	filters        TEXT NOT NULL DEFAULT '{}',
	active         INTEGER NOT NULL DEFAULT 1,
	created_at     TEXT NOT NULL,
	updated_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_alerts_active ON alerts (active);
`

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the
// schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SaveJob inserts or replaces a job.
func (s *SQLiteStore) SaveJob(ctx context.Context, job model.Job) error {
	tags, err := json.Marshal(job.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags for job %s: %w", job.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO jobs
		(id, title, company, description, location, salary, type, level, tags, remote, created_at, updated_at, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.Title, job.Company, job.Description, job.Location, job.Salary,
		string(job.Type), string(job.Level), string(tags), boolToInt(job.Remote),
		job.CreatedAt.UTC().Format(time.RFC3339Nano),
		job.UpdatedAt.UTC().Format(time.RFC3339Nano),
		job.Source,
	)
	if err != nil {
		return fmt.Errorf("saving job %s: %w", job.ID, err)
	}
	return nil
}

// FindJobByID returns the job with the given ID, or nil if absent.
func (s *SQLiteStore) FindJobByID(ctx context.Context, id string) (*model.Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, company, description, location, salary, type, level, tags, remote, created_at, updated_at, source
		FROM jobs WHERE id = ?`, id)

	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding job %s: %w", id, err)
	}
	return &job, nil
}

// FindByCriteria returns jobs matching all set criteria fields, newest first.
// limit <= 0 means unbounded.
func (s *SQLiteStore) FindByCriteria(ctx context.Context, c model.Criteria, limit, offset int) ([]model.Job, error) {
	query := `
		SELECT id, title, company, description, location, salary, type, level, tags, remote, created_at, updated_at, source
		FROM jobs WHERE 1=1`
	var args []any

	if c.Company != "" {
		query += " AND company = ?"
		args = append(args, c.Company)
	}
	if c.Location != "" {
		query += " AND location = ?"
		args = append(args, c.Location)
	}
	if c.Type != "" {
		query += " AND type = ?"
		args = append(args, c.Type)
	}
	if c.Level != "" {
		query += " AND level = ?"
		args = append(args, c.Level)
	}
	if c.Remote != nil {
		query += " AND remote = ?"
		args = append(args, boolToInt(*c.Remote))
	}

	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying jobs by criteria: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning job row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating job rows: %w", err)
	}
	return jobs, nil
}

// DeleteJob removes a job. Deleting an absent ID is a no-op.
func (s *SQLiteStore) DeleteJob(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting job %s: %w", id, err)
	}
	return nil
}

// SaveAlert inserts or replaces an alert. Deactivation is a SaveAlert of a
// deactivated alert; alerts are never deleted.
func (s *SQLiteStore) SaveAlert(ctx context.Context, alert model.Alert) error {
	filters, err := json.Marshal(alert.Filters)
	if err != nil {
		return fmt.Errorf("encoding filters for alert %s: %w", alert.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO alerts
		(id, email, search_pattern, filters, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		alert.ID, alert.Email, alert.SearchPattern, string(filters), boolToInt(alert.Active),
		alert.CreatedAt.UTC().Format(time.RFC3339Nano),
		alert.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving alert %s: %w", alert.ID, err)
	}
	return nil
}

// FindAlertByID returns the alert with the given ID, or nil if absent.
func (s *SQLiteStore) FindAlertByID(ctx context.Context, id string) (*model.Alert, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, search_pattern, filters, active, created_at, updated_at
		FROM alerts WHERE id = ?`, id)

	alert, err := scanAlert(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding alert %s: %w", id, err)
	}
	return &alert, nil
}

// FindAlertsByEmail returns every alert registered for the address,
// active or not.
func (s *SQLiteStore) FindAlertsByEmail(ctx context.Context, email string) ([]model.Alert, error) {
	return s.queryAlerts(ctx, `
		SELECT id, email, search_pattern, filters, active, created_at, updated_at
		FROM alerts WHERE email = ? ORDER BY created_at DESC`, email)
}

// FindActiveAlerts returns the current active-alert snapshot.
func (s *SQLiteStore) FindActiveAlerts(ctx context.Context) ([]model.Alert, error) {
	return s.queryAlerts(ctx, `
		SELECT id, email, search_pattern, filters, active, created_at, updated_at
		FROM alerts WHERE active = 1 ORDER BY created_at DESC`)
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) queryAlerts(ctx context.Context, query string, args ...any) ([]model.Alert, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying alerts: %w", err)
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning alert row: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alert rows: %w", err)
	}
	return alerts, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanJob(sc scanner) (model.Job, error) {
	var (
		job                  model.Job
		tags                 string
		remote               int
		createdAt, updatedAt string
		typ, level           string
	)
	err := sc.Scan(&job.ID, &job.Title, &job.Company, &job.Description, &job.Location,
		&job.Salary, &typ, &level, &tags, &remote, &createdAt, &updatedAt, &job.Source)
	if err != nil {
		return model.Job{}, err
	}

	job.Type = model.JobType(typ)
	job.Level = model.JobLevel(level)
	job.Remote = remote != 0
	if err := json.Unmarshal([]byte(tags), &job.Tags); err != nil {
		return model.Job{}, fmt.Errorf("decoding tags: %w", err)
	}
	if job.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return model.Job{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if job.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return model.Job{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return job, nil
}

func scanAlert(sc scanner) (model.Alert, error) {
	var (
		alert                model.Alert
		filters              string
		active               int
		createdAt, updatedAt string
	)
	err := sc.Scan(&alert.ID, &alert.Email, &alert.SearchPattern, &filters, &active, &createdAt, &updatedAt)
	if err != nil {
		return model.Alert{}, err
	}

	alert.Active = active != 0
	if err := json.Unmarshal([]byte(filters), &alert.Filters); err != nil {
		return model.Alert{}, fmt.Errorf("decoding filters: %w", err)
	}
	if alert.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return model.Alert{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if alert.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return model.Alert{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return alert, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
