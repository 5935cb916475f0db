package store

import (
	"context"

	"github.com/rappy1999/workhours/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Users() Users
	Entries() Entries
}

type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, userID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Delete(ctx context.Context, userID string) error
}

// Entries persists time entries. Create assigns the entry ID and creation
// timestamp. List and range queries are always scoped by owner; GetByID is
// not, so callers can distinguish a missing entry from one owned by someone
// else. Update and Delete are additionally keyed by owner, and writes are
// single statements so a concurrent reader never sees durations computed
// from a different clock pair than the one stored.
type Entries interface {
	Create(ctx context.Context, e *model.TimeEntry) (*model.TimeEntry, error)
	GetByID(ctx context.Context, entryID string) (*model.TimeEntry, error)
	List(ctx context.Context, req model.ListEntriesRequest) ([]*model.TimeEntry, error)
	Update(ctx context.Context, e *model.TimeEntry) (*model.TimeEntry, error)
	Delete(ctx context.Context, ownerID, entryID string) error
}
