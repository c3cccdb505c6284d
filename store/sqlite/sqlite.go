/*
Package sqlite provides the SQLite-backed store for the presence
engine.

PURPOSE:
  Persists the roster, the append-only attendance log, and leave
  requests. The same SQL shapes apply to PostgreSQL with minor dialect
  changes.

APPEND-ONLY ENFORCEMENT:
  attendance_records has no UPDATE or DELETE path. A record is written
  exactly once per physical check event.

STATUS COMPARE-AND-SWAP:
  Leave request decisions race: two managers may approve and reject the
  same request concurrently. UpdateStatus performs

    UPDATE leave_requests SET status=?, approver_id=?
    WHERE id=? AND status=?

  and inspects RowsAffected, so exactly one transition out of PENDING
  wins at the database level regardless of process count.

WAL MODE:
  Opened with WAL for concurrent readers and crash recovery.

USAGE:
  store, err := sqlite.New("./presence.db")   // or ":memory:"
  defer store.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/presence-engine/attendance"
	"github.com/warp/presence-engine/dates"
	"github.com/warp/presence-engine/leave"
	"github.com/warp/presence-engine/org"
)

// Store implements attendance.DaySource, leave.RequestStore and the
// roster/record queries the api layer needs.
type Store struct {
	db *sql.DB
}

// New opens (or creates) a database at path. Use ":memory:" for an
// in-memory database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		department TEXT NOT NULL,
		start_date TEXT NOT NULL
	);

	-- Append-only check event log. No UPDATE, no DELETE.
	CREATE TABLE IF NOT EXISTS attendance_records (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		ts TEXT NOT NULL,
		event_type TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		inside INTEGER NOT NULL,
		note TEXT,
		photo_ref TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_records_employee_ts
		ON attendance_records(employee_id, ts);
	CREATE INDEX IF NOT EXISTS idx_records_day
		ON attendance_records(DATE(ts));

	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		category TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		reason TEXT NOT NULL,
		status TEXT NOT NULL,
		days_count INTEGER NOT NULL,
		approver_id TEXT,
		attachment_ref TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_requests_employee
		ON leave_requests(employee_id);
	CREATE INDEX IF NOT EXISTS idx_requests_status
		ON leave_requests(status);
	-- Hot path: approved leaves covering a day
	CREATE INDEX IF NOT EXISTS idx_requests_status_range
		ON leave_requests(status, start_date, end_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

const dayFormat = "2006-01-02"

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployee inserts or replaces a roster entry. The roster itself
// is maintained by the external onboarding system; this is its sync
// point.
func (s *Store) SaveEmployee(ctx context.Context, e org.Employee) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO employees (id, name, role, department, start_date)
		VALUES (?, ?, ?, ?, ?)`,
		string(e.ID), e.Name, string(e.Role), e.Department, e.StartDate.Format(dayFormat))
	return err
}

func (s *Store) Employee(ctx context.Context, id org.EmployeeID) (org.Employee, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, role, department, start_date
		FROM employees WHERE id = ?`, string(id))
	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return org.Employee{}, org.ErrEmployeeNotFound
	}
	return e, err
}

func (s *Store) Employees(ctx context.Context) ([]org.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, role, department, start_date
		FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []org.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(sc scanner) (org.Employee, error) {
	var e org.Employee
	var id, role, start string
	if err := sc.Scan(&id, &e.Name, &role, &e.Department, &start); err != nil {
		return org.Employee{}, err
	}
	e.ID = org.EmployeeID(id)
	e.Role = org.Role(role)
	startDate, err := time.Parse(dayFormat, start)
	if err != nil {
		return org.Employee{}, fmt.Errorf("parse start date %q: %w", start, err)
	}
	e.StartDate = startDate
	return e, nil
}

// =============================================================================
// ATTENDANCE RECORDS (append-only)
// =============================================================================

// AppendRecord writes one check event. There is no update or delete
// counterpart.
func (s *Store) AppendRecord(ctx context.Context, r attendance.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance_records
			(id, employee_id, ts, event_type, lat, lng, inside, note, photo_ref)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.EmployeeID), r.Timestamp.UTC().Format(time.RFC3339),
		string(r.Type), r.Location.Lat, r.Location.Lng, boolToInt(r.Location.Inside),
		r.Note, r.PhotoRef)
	return err
}

func (s *Store) RecordsForDay(ctx context.Context, day time.Time) ([]attendance.Record, error) {
	return s.queryRecords(ctx, `
		SELECT id, employee_id, ts, event_type, lat, lng, inside, note, photo_ref
		FROM attendance_records
		WHERE DATE(ts) = ?
		ORDER BY ts`, dates.DayOf(day).Format(dayFormat))
}

func (s *Store) RecordsForEmployee(ctx context.Context, id org.EmployeeID, from, to time.Time) ([]attendance.Record, error) {
	return s.queryRecords(ctx, `
		SELECT id, employee_id, ts, event_type, lat, lng, inside, note, photo_ref
		FROM attendance_records
		WHERE employee_id = ? AND DATE(ts) >= ? AND DATE(ts) <= ?
		ORDER BY ts`,
		string(id), dates.DayOf(from).Format(dayFormat), dates.DayOf(to).Format(dayFormat))
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]attendance.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []attendance.Record
	for rows.Next() {
		var r attendance.Record
		var id, employeeID, ts, eventType string
		var inside int
		var note, photo sql.NullString
		if err := rows.Scan(&id, &employeeID, &ts, &eventType,
			&r.Location.Lat, &r.Location.Lng, &inside, &note, &photo); err != nil {
			return nil, err
		}
		r.ID = id
		r.EmployeeID = org.EmployeeID(employeeID)
		r.Type = attendance.EventType(eventType)
		r.Location.Inside = inside != 0
		r.Note = note.String
		r.PhotoRef = photo.String
		stamp, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
		r.Timestamp = stamp
		out = append(out, r)
	}
	return out, rows.Err()
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

func (s *Store) CreateRequest(ctx context.Context, r leave.Request) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_requests
			(id, employee_id, category, start_date, end_date, reason,
			 status, days_count, approver_id, attachment_ref, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.EmployeeID), string(r.Category),
		r.StartDate.Format(dayFormat), r.EndDate.Format(dayFormat),
		r.Reason, string(r.Status), r.DaysCount, r.ApproverID, r.AttachmentRef,
		time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

func (s *Store) GetRequest(ctx context.Context, id string) (leave.Request, error) {
	row := s.db.QueryRowContext(ctx, selectRequest+` WHERE id = ?`, id)
	r, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return leave.Request{}, leave.ErrNotFound
	}
	return r, err
}

func (s *Store) ListRequests(ctx context.Context, employeeID org.EmployeeID) ([]leave.Request, error) {
	if employeeID == "" {
		return s.queryRequests(ctx, selectRequest+` ORDER BY created_at DESC`)
	}
	return s.queryRequests(ctx, selectRequest+` WHERE employee_id = ? ORDER BY created_at DESC`, string(employeeID))
}

func (s *Store) ListPending(ctx context.Context) ([]leave.Request, error) {
	return s.queryRequests(ctx, selectRequest+` WHERE status = ? ORDER BY created_at DESC`, string(leave.StatusPending))
}

func (s *Store) ApprovedCovering(ctx context.Context, day time.Time) ([]leave.Request, error) {
	d := dates.DayOf(day).Format(dayFormat)
	return s.queryRequests(ctx, selectRequest+`
		WHERE status = ? AND start_date <= ? AND end_date >= ?`,
		string(leave.StatusApproved), d, d)
}

// UpdateStatus is the store-level compare-and-swap: the row is updated
// only if its status still equals from.
func (s *Store) UpdateStatus(ctx context.Context, id string, from, to leave.Status, approverID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE leave_requests
		SET status = ?, approver_id = CASE WHEN ? != '' THEN ? ELSE approver_id END
		WHERE id = ? AND status = ?`,
		string(to), approverID, approverID, id, string(from))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}

	// Distinguish a lost race from an unknown id.
	current, err := s.GetRequest(ctx, id)
	if err != nil {
		return err
	}
	return &leave.InvalidTransitionError{ID: id, From: current.Status, To: to}
}

const selectRequest = `
	SELECT id, employee_id, category, start_date, end_date, reason,
	       status, days_count, approver_id, attachment_ref
	FROM leave_requests`

func (s *Store) queryRequests(ctx context.Context, query string, args ...any) ([]leave.Request, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []leave.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanRequest(sc scanner) (leave.Request, error) {
	var r leave.Request
	var employeeID, category, start, end, status string
	var approver, attachment sql.NullString
	if err := sc.Scan(&r.ID, &employeeID, &category, &start, &end,
		&r.Reason, &status, &r.DaysCount, &approver, &attachment); err != nil {
		return leave.Request{}, err
	}
	r.EmployeeID = org.EmployeeID(employeeID)
	r.Category = leave.Category(category)
	r.Status = leave.Status(status)
	r.ApproverID = approver.String
	r.AttachmentRef = attachment.String

	var err error
	if r.StartDate, err = time.Parse(dayFormat, start); err != nil {
		return leave.Request{}, fmt.Errorf("parse start date %q: %w", start, err)
	}
	if r.EndDate, err = time.Parse(dayFormat, end); err != nil {
		return leave.Request{}, fmt.Errorf("parse end date %q: %w", end, err)
	}
	return r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
