package resource

import (
	"context"
	"time"
)

// ListOptions controls pagination and deleted-row visibility for list queries.
//
// Start is an offset and End a row count, mirroring the service's start/end
// query parameters (end defaults to 50 at the API layer; End == 0 means "all
// rows from Start"). When both are set, End must not be smaller than Start.
type ListOptions struct {
	Start       int
	End         int
	ShowDeleted bool
}

func (o ListOptions) validate(op string) error {
	if o.Start < 0 || o.End < 0 {
		return invalid(op, "negative range")
	}
	if o.End > 0 && o.Start > 0 && o.End < o.Start {
		return invalid(op, "end before start")
	}
	return nil
}

// Store is the persistence boundary for all managed resources.
//
// Contract notes:
// - Get* excludes soft-deleted rows (they are ErrNotFound).
// - List* returns rows whose deleted flag equals ShowDeleted.
// - Create/Update/SoftDelete stamp the audit columns with actorID.
// - GetConfiguration requires the table to hold exactly one row.
type Store interface {
	CreateUser(ctx context.Context, u *User, actorID string) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	ListUsers(ctx context.Context, opts ListOptions) ([]User, error)
	UpdateUser(ctx context.Context, u *User, actorID string) error
	SoftDeleteUser(ctx context.Context, id, actorID string) error
	TouchLastAccess(ctx context.Context, userID string, now time.Time) error

	CreateAddress(ctx context.Context, a *Address, actorID string) error
	GetAddress(ctx context.Context, id string) (Address, error)
	ListAddresses(ctx context.Context, opts ListOptions) ([]Address, error)
	UpdateAddress(ctx context.Context, a *Address, actorID string) error
	SoftDeleteAddress(ctx context.Context, id, actorID string) error

	CreateConfiguration(ctx context.Context, c *Configuration, actorID string) error
	GetConfiguration(ctx context.Context) (Configuration, error)
	ListConfigurations(ctx context.Context, opts ListOptions) ([]Configuration, error)
	UpdateConfiguration(ctx context.Context, c *Configuration, actorID string) error

	Ping(ctx context.Context) error
	Close() error
}
