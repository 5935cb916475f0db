package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rappy1999/workhours/internal/model"
	"github.com/rappy1999/workhours/internal/store"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339Nano
)

// New constructs a SQLite-backed store from an open connection. The schema
// must already be in place; see EnsureSchema.
func New(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Users() store.Users     { return &users{db: s.db} }
func (s *sqliteStore) Entries() store.Entries { return &entries{db: s.db} }

// HealthPing implements health.HealthPinger for the SQLite-backed store.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	now := time.Now().UTC()
	status := m.Status
	if status == "" {
		status = "ACTIVE"
	}
	tz := m.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	_, err := u.db.ExecContext(ctx, `
        INSERT INTO users (user_id, email, display_name, time_zone, status, creation_time)
        VALUES (?,?,?,?,?,?)
    `, m.UserID, m.Email, m.DisplayName, tz, status, now.Format(timeLayout))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: user %s already exists", model.ErrConflict, m.UserID)
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	out := *m
	out.TimeZone = tz
	out.Status = status
	out.CreationTime = now
	return &out, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, display_name, time_zone, status, creation_time, last_active_time
        FROM users WHERE user_id = ?
    `, userID)
	return scanUser(row)
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, display_name, time_zone, status, creation_time, last_active_time
        FROM users WHERE email = ?
    `, email)
	return scanUser(row)
}

func (u *users) Delete(ctx context.Context, userID string) error {
	res, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var out model.User
	var created string
	var last *string
	if err := row.Scan(&out.UserID, &out.Email, &out.DisplayName, &out.TimeZone, &out.Status, &created, &last); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	var err error
	if out.CreationTime, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("parsing creation time: %w", err)
	}
	if last != nil {
		t, err := time.Parse(timeLayout, *last)
		if err != nil {
			return nil, fmt.Errorf("parsing last active time: %w", err)
		}
		out.LastActiveTime = &t
	}
	return &out, nil
}

// --- Entries ---

type entries struct{ db *sql.DB }

func (e *entries) Create(ctx context.Context, m *model.TimeEntry) (*model.TimeEntry, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := e.db.ExecContext(ctx, `
        INSERT INTO time_entries
            (entry_id, owner_id, entry_date, start_time, end_time, lunch_minutes, gross_minutes, net_minutes, notes, creation_time)
        VALUES (?,?,?,?,?,?,?,?,?,?)
    `, id, m.OwnerID, m.Date.Format(dateLayout), m.StartTime, m.EndTime,
		m.LunchMinutes, m.GrossMinutes, m.NetMinutes, m.Notes, now.Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("inserting time entry: %w", err)
	}
	out := *m
	out.EntryID = id
	out.CreationTime = now
	return &out, nil
}

func (e *entries) GetByID(ctx context.Context, entryID string) (*model.TimeEntry, error) {
	row := e.db.QueryRowContext(ctx, `
        SELECT entry_id, owner_id, entry_date, start_time, end_time, lunch_minutes, gross_minutes, net_minutes, notes, creation_time
        FROM time_entries WHERE entry_id = ?
    `, entryID)
	return scanEntry(row)
}

func (e *entries) List(ctx context.Context, req model.ListEntriesRequest) ([]*model.TimeEntry, error) {
	query := `
        SELECT entry_id, owner_id, entry_date, start_time, end_time, lunch_minutes, gross_minutes, net_minutes, notes, creation_time
        FROM time_entries WHERE owner_id = ?`
	args := []any{req.OwnerID}
	if req.From != nil {
		query += ` AND entry_date >= ?`
		args = append(args, req.From.Format(dateLayout))
	}
	if req.To != nil {
		query += ` AND entry_date <= ?`
		args = append(args, req.To.Format(dateLayout))
	}
	query += ` ORDER BY entry_date DESC, start_time ASC`
	if req.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, req.Limit)
	}

	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*model.TimeEntry
	for rows.Next() {
		m, err := scanEntryRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update rewrites the clock pair, lunch deduction, notes and both derived
// durations in one statement, keyed by owner and entry.
func (e *entries) Update(ctx context.Context, m *model.TimeEntry) (*model.TimeEntry, error) {
	res, err := e.db.ExecContext(ctx, `
        UPDATE time_entries
        SET entry_date = ?, start_time = ?, end_time = ?, lunch_minutes = ?, gross_minutes = ?, net_minutes = ?, notes = ?
        WHERE owner_id = ? AND entry_id = ?
    `, m.Date.Format(dateLayout), m.StartTime, m.EndTime, m.LunchMinutes,
		m.GrossMinutes, m.NetMinutes, m.Notes, m.OwnerID, m.EntryID)
	if err != nil {
		return nil, fmt.Errorf("updating time entry: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, model.ErrNotFound
	}
	return e.GetByID(ctx, m.EntryID)
}

func (e *entries) Delete(ctx context.Context, ownerID, entryID string) error {
	res, err := e.db.ExecContext(ctx, `DELETE FROM time_entries WHERE owner_id = ? AND entry_id = ?`, ownerID, entryID)
	if err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanEntry(row *sql.Row) (*model.TimeEntry, error) {
	m, err := scanEntryRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	return m, err
}

func scanEntryRow(r rowScanner) (*model.TimeEntry, error) {
	var out model.TimeEntry
	var date, created string
	if err := r.Scan(&out.EntryID, &out.OwnerID, &date, &out.StartTime, &out.EndTime,
		&out.LunchMinutes, &out.GrossMinutes, &out.NetMinutes, &out.Notes, &created); err != nil {
		return nil, err
	}
	var err error
	if out.Date, err = time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("parsing entry date: %w", err)
	}
	if out.CreationTime, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("parsing creation time: %w", err)
	}
	return &out, nil
}
