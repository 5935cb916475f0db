package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rappy1999/workhours/internal/model"
	"github.com/rappy1999/workhours/internal/store"
)

//go:embed schema.sql
var ddl string

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

// EnsureSchema applies the embedded DDL (idempotent statements).
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, ddl)
	return err
}

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users     { return &users{db: s.db} }
func (s *pgStore) Entries() store.Entries { return &entries{db: s.db} }

// HealthPing implements health.HealthPinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	status := m.Status
	if status == "" {
		status = "ACTIVE"
	}
	tz := m.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	var created time.Time
	row := u.db.QueryRowContext(ctx, `
        INSERT INTO users (user_id, email, display_name, time_zone, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING creation_time
    `, m.UserID, m.Email, m.DisplayName, tz, status)
	if err := row.Scan(&created); err != nil {
		var pgErr *pgconn.PgError
		// 23505 is unique_violation.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: user %s already exists", model.ErrConflict, m.UserID)
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	out := *m
	out.TimeZone = tz
	out.Status = status
	out.CreationTime = created
	return &out, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, display_name, time_zone, status, creation_time, last_active_time
        FROM users WHERE user_id=$1
    `, userID)
	return scanUser(row)
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, display_name, time_zone, status, creation_time, last_active_time
        FROM users WHERE email=$1
    `, email)
	return scanUser(row)
}

func (u *users) Delete(ctx context.Context, userID string) error {
	res, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE user_id=$1`, userID)
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
	var last *time.Time
	if err := row.Scan(&out.UserID, &out.Email, &out.DisplayName, &out.TimeZone, &out.Status, &out.CreationTime, &last); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	out.LastActiveTime = last
	return &out, nil
}

// --- Entries ---

type entries struct{ db *sql.DB }

func (e *entries) Create(ctx context.Context, m *model.TimeEntry) (*model.TimeEntry, error) {
	id := uuid.New().String()
	var created time.Time
	row := e.db.QueryRowContext(ctx, `
        INSERT INTO time_entries
            (entry_id, owner_id, entry_date, start_time, end_time, lunch_minutes, gross_minutes, net_minutes, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING creation_time
    `, id, m.OwnerID, m.Date, m.StartTime, m.EndTime, m.LunchMinutes, m.GrossMinutes, m.NetMinutes, m.Notes)
	if err := row.Scan(&created); err != nil {
		return nil, fmt.Errorf("inserting time entry: %w", err)
	}
	out := *m
	out.EntryID = id
	out.CreationTime = created
	return &out, nil
}

func (e *entries) GetByID(ctx context.Context, entryID string) (*model.TimeEntry, error) {
	row := e.db.QueryRowContext(ctx, `
        SELECT entry_id, owner_id, entry_date, start_time, end_time, lunch_minutes, gross_minutes, net_minutes, notes, creation_time
        FROM time_entries WHERE entry_id=$1
    `, entryID)
	m, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	return m, err
}

func (e *entries) List(ctx context.Context, req model.ListEntriesRequest) ([]*model.TimeEntry, error) {
	query := `
        SELECT entry_id, owner_id, entry_date, start_time, end_time, lunch_minutes, gross_minutes, net_minutes, notes, creation_time
        FROM time_entries WHERE owner_id=$1`
	args := []any{req.OwnerID}
	if req.From != nil {
		args = append(args, *req.From)
		query += fmt.Sprintf(` AND entry_date >= $%d`, len(args))
	}
	if req.To != nil {
		args = append(args, *req.To)
		query += fmt.Sprintf(` AND entry_date <= $%d`, len(args))
	}
	query += ` ORDER BY entry_date DESC, start_time ASC`
	if req.Limit > 0 {
		args = append(args, req.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*model.TimeEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (e *entries) Update(ctx context.Context, m *model.TimeEntry) (*model.TimeEntry, error) {
	res, err := e.db.ExecContext(ctx, `
        UPDATE time_entries
        SET entry_date=$1, start_time=$2, end_time=$3, lunch_minutes=$4, gross_minutes=$5, net_minutes=$6, notes=$7
        WHERE owner_id=$8 AND entry_id=$9
    `, m.Date, m.StartTime, m.EndTime, m.LunchMinutes, m.GrossMinutes, m.NetMinutes, m.Notes, m.OwnerID, m.EntryID)
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
	res, err := e.db.ExecContext(ctx, `DELETE FROM time_entries WHERE owner_id=$1 AND entry_id=$2`, ownerID, entryID)
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

func scanEntry(r rowScanner) (*model.TimeEntry, error) {
	var out model.TimeEntry
	if err := r.Scan(&out.EntryID, &out.OwnerID, &out.Date, &out.StartTime, &out.EndTime,
		&out.LunchMinutes, &out.GrossMinutes, &out.NetMinutes, &out.Notes, &out.CreationTime); err != nil {
		return nil, err
	}
	return &out, nil
}
