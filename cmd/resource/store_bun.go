package resource

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"
)

// BunStore implements Store on top of a bun.DB. The bun.DB (and its underlying
// sql.DB) is owned by the caller; Close closes it.
type BunStore struct {
	db *bun.DB
}

// NewBunStore wraps an already-opened bun.DB.
func NewBunStore(db *bun.DB) (*BunStore, error) {
	if db == nil {
		return nil, invalid("resource.NewBunStore", "nil db")
	}
	return &BunStore{db: db}, nil
}

// CreateSchema creates the resource tables if they do not exist.
// The service creates its schema at startup; there is no migration tooling.
func (s *BunStore) CreateSchema(ctx context.Context) error {
	models := []any{
		(*Address)(nil),
		(*User)(nil),
		(*Configuration)(nil),
	}
	for _, m := range models {
		if _, err := s.db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ---- audit stamping ----

func stampCreate(a *Auditable, now time.Time, actorID string) {
	a.CreatedAt = &now
	a.ModifiedAt = &now
	if actorID != "" {
		a.CreatedBy = &actorID
		a.ModifiedBy = &actorID
	}
}

func stampUpdate(a *Auditable, now time.Time, actorID string) {
	a.ModifiedAt = &now
	if actorID != "" {
		a.ModifiedBy = &actorID
	}
}

// ---- users ----

func (s *BunStore) CreateUser(ctx context.Context, u *User, actorID string) error {
	const op = "resource.CreateUser"

	if u == nil {
		return invalid(op, "nil user")
	}
	if strings.TrimSpace(u.Username) == "" {
		return invalid(op, "username is required")
	}
	if u.PasswordHash == "" {
		return invalid(op, "password hash is required")
	}
	if u.ID == "" {
		u.ID = NewID()
	}
	stampCreate(&u.Auditable, time.Now().UTC(), actorID)

	if _, err := s.db.NewInsert().Model(u).Exec(ctx); err != nil {
		if field, ok := classifyUniqueViolation(err); ok {
			return ConflictError{Op: op, Field: field}
		}
		return err
	}
	return nil
}

func (s *BunStore) GetUser(ctx context.Context, id string) (User, error) {
	const op = "resource.GetUser"

	var u User
	err := s.db.NewSelect().Model(&u).
		Where("id = ?", id).
		Where("deleted = ?", false).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, NotFoundError{Op: op, Resource: "user"}
		}
		return User{}, err
	}
	return u, nil
}

func (s *BunStore) GetUserByUsername(ctx context.Context, username string) (User, error) {
	const op = "resource.GetUserByUsername"

	var u User
	err := s.db.NewSelect().Model(&u).
		Where("username = ?", username).
		Where("deleted = ?", false).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, NotFoundError{Op: op, Resource: "user"}
		}
		return User{}, err
	}
	return u, nil
}

func (s *BunStore) ListUsers(ctx context.Context, opts ListOptions) ([]User, error) {
	const op = "resource.ListUsers"

	if err := opts.validate(op); err != nil {
		return nil, err
	}

	users := make([]User, 0)
	q := applyListRange(s.db.NewSelect().Model(&users).
		Where("deleted = ?", opts.ShowDeleted).
		Order("created_at ASC"), opts)
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *BunStore) UpdateUser(ctx context.Context, u *User, actorID string) error {
	const op = "resource.UpdateUser"

	if u == nil || u.ID == "" {
		return invalid(op, "missing user id")
	}
	stampUpdate(&u.Auditable, time.Now().UTC(), actorID)

	res, err := s.db.NewUpdate().Model(u).
		WherePK().
		Where("deleted = ?", false).
		Exec(ctx)
	if err != nil {
		if field, ok := classifyUniqueViolation(err); ok {
			return ConflictError{Op: op, Field: field}
		}
		return err
	}
	return requireAffected(res, op, "user")
}

func (s *BunStore) SoftDeleteUser(ctx context.Context, id, actorID string) error {
	return s.softDelete(ctx, (*User)(nil), "resource.SoftDeleteUser", "user", id, actorID)
}

func (s *BunStore) TouchLastAccess(ctx context.Context, userID string, now time.Time) error {
	_, err := s.db.NewUpdate().Model((*User)(nil)).
		Set("last_access_at = ?", now).
		Where("id = ?", userID).
		Where("deleted = ?", false).
		Exec(ctx)
	return err
}

// ---- addresses ----

func (s *BunStore) CreateAddress(ctx context.Context, a *Address, actorID string) error {
	const op = "resource.CreateAddress"

	if a == nil {
		return invalid(op, "nil address")
	}
	if strings.TrimSpace(a.Line) == "" {
		return invalid(op, "address is required")
	}
	if a.ID == "" {
		a.ID = NewID()
	}
	stampCreate(&a.Auditable, time.Now().UTC(), actorID)

	if _, err := s.db.NewInsert().Model(a).Exec(ctx); err != nil {
		return err
	}
	return nil
}

func (s *BunStore) GetAddress(ctx context.Context, id string) (Address, error) {
	const op = "resource.GetAddress"

	var a Address
	err := s.db.NewSelect().Model(&a).
		Where("id = ?", id).
		Where("deleted = ?", false).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Address{}, NotFoundError{Op: op, Resource: "address"}
		}
		return Address{}, err
	}
	return a, nil
}

func (s *BunStore) ListAddresses(ctx context.Context, opts ListOptions) ([]Address, error) {
	const op = "resource.ListAddresses"

	if err := opts.validate(op); err != nil {
		return nil, err
	}

	addresses := make([]Address, 0)
	q := applyListRange(s.db.NewSelect().Model(&addresses).
		Where("deleted = ?", opts.ShowDeleted).
		Order("created_at ASC"), opts)
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (s *BunStore) UpdateAddress(ctx context.Context, a *Address, actorID string) error {
	const op = "resource.UpdateAddress"

	if a == nil || a.ID == "" {
		return invalid(op, "missing address id")
	}
	stampUpdate(&a.Auditable, time.Now().UTC(), actorID)

	res, err := s.db.NewUpdate().Model(a).
		WherePK().
		Where("deleted = ?", false).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, op, "address")
}

func (s *BunStore) SoftDeleteAddress(ctx context.Context, id, actorID string) error {
	return s.softDelete(ctx, (*Address)(nil), "resource.SoftDeleteAddress", "address", id, actorID)
}

// ---- configurations ----

func (s *BunStore) CreateConfiguration(ctx context.Context, c *Configuration, actorID string) error {
	const op = "resource.CreateConfiguration"

	if c == nil {
		return invalid(op, "nil configuration")
	}
	if c.ID == "" {
		c.ID = NewID()
	}
	if c.PasswordPolicyStrength == "" {
		c.PasswordPolicyStrength = "min"
	}
	stampCreate(&c.Auditable, time.Now().UTC(), actorID)

	if _, err := s.db.NewInsert().Model(c).Exec(ctx); err != nil {
		return err
	}
	return nil
}

// GetConfiguration returns the singleton configuration row and fails when the
// table holds zero or multiple active rows.
func (s *BunStore) GetConfiguration(ctx context.Context) (Configuration, error) {
	const op = "resource.GetConfiguration"

	configs := make([]Configuration, 0, 2)
	err := s.db.NewSelect().Model(&configs).
		Where("deleted = ?", false).
		Limit(2).
		Scan(ctx)
	if err != nil {
		return Configuration{}, err
	}
	if len(configs) != 1 {
		return Configuration{}, OpError{Op: op, Kind: ErrSingleton, Msg: "expected exactly one configuration row"}
	}
	return configs[0], nil
}

func (s *BunStore) ListConfigurations(ctx context.Context, opts ListOptions) ([]Configuration, error) {
	const op = "resource.ListConfigurations"

	if err := opts.validate(op); err != nil {
		return nil, err
	}

	configs := make([]Configuration, 0)
	q := applyListRange(s.db.NewSelect().Model(&configs).
		Where("deleted = ?", opts.ShowDeleted).
		Order("created_at ASC"), opts)
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return configs, nil
}

func (s *BunStore) UpdateConfiguration(ctx context.Context, c *Configuration, actorID string) error {
	const op = "resource.UpdateConfiguration"

	if c == nil || c.ID == "" {
		return invalid(op, "missing configuration id")
	}
	stampUpdate(&c.Auditable, time.Now().UTC(), actorID)

	res, err := s.db.NewUpdate().Model(c).
		WherePK().
		Where("deleted = ?", false).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, op, "configuration")
}

// ---- lifecycle ----

func (s *BunStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *BunStore) Close() error {
	return s.db.Close()
}

// ---- helpers ----

// applyListRange applies LIMIT/OFFSET per ListOptions. End == 0 means "all
// rows from Start"; SQLite rejects OFFSET without LIMIT, so the open-ended
// case still sets an explicit limit.
func applyListRange(q *bun.SelectQuery, opts ListOptions) *bun.SelectQuery {
	switch {
	case opts.End > 0:
		q = q.Limit(opts.End)
	case opts.Start > 0:
		q = q.Limit(math.MaxInt32)
	}
	if opts.Start > 0 {
		q = q.Offset(opts.Start)
	}
	return q
}

func (s *BunStore) softDelete(ctx context.Context, model any, op, resourceName, id, actorID string) error {
	if strings.TrimSpace(id) == "" {
		return invalid(op, "missing id")
	}
	now := time.Now().UTC()

	res, err := s.db.NewUpdate().Model(model).
		Set("deleted = ?", true).
		Set("deleted_at = ?", now).
		Set("deleted_by = ?", actorID).
		Set("modified_at = ?", now).
		Set("modified_by = ?", actorID).
		Where("id = ?", id).
		Where("deleted = ?", false).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, op, resourceName)
}

func requireAffected(res sql.Result, op, resourceName string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return NotFoundError{Op: op, Resource: resourceName}
	}
	return nil
}

// classifyUniqueViolation maps driver-specific unique violations to a logical
// field name. Postgres reports SQLSTATE 23505; modernc sqlite reports a
// "UNIQUE constraint failed: table.column" message.
func classifyUniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "username") {
			return "username", true
		}
		return "", true
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		if strings.Contains(msg, "username") {
			return "username", true
		}
		return "", true
	}
	return "", false
}
