package resource

import (
	"time"

	"github.com/uptrace/bun"

	"fastusers/cmd/security/password"
)

// Auditable holds the audit columns shared by every table.
// The store stamps these on create/update/delete; handlers never set them.
type Auditable struct {
	CreatedAt  *time.Time `bun:"created_at,nullzero" json:"created_at,omitempty"`
	ModifiedAt *time.Time `bun:"modified_at,nullzero" json:"modified_at,omitempty"`
	CreatedBy  *string    `bun:"created_by,nullzero" json:"created_by,omitempty"`
	ModifiedBy *string    `bun:"modified_by,nullzero" json:"modified_by,omitempty"`
	Deleted    bool       `bun:"deleted,notnull,default:false" json:"-"`
	DeletedAt  *time.Time `bun:"deleted_at,nullzero" json:"-"`
	DeletedBy  *string    `bun:"deleted_by,nullzero" json:"-"`
}

// User is the service's security principal. Username is an email address and
// unique among all rows, deleted or not.
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID           string     `bun:"id,pk"`
	Username     string     `bun:"username,notnull,unique"`
	PasswordHash string     `bun:"password_hash,notnull"`
	Name         string     `bun:"name,notnull"`
	FirstName    *string    `bun:"first_name,nullzero"`
	MiddleName   *string    `bun:"middle_name,nullzero"`
	LastName     *string    `bun:"last_name,nullzero"`
	IsBlocked    bool       `bun:"is_blocked,notnull,default:false"`
	LastAccessAt *time.Time `bun:"last_access_at,nullzero"`
	IsAdmin      bool       `bun:"is_admin,notnull,default:false"`
	AddressID    *string    `bun:"address_id,nullzero"`

	Auditable
}

// Address is a postal address owned by the user who created it.
type Address struct {
	bun.BaseModel `bun:"table:addresses"`

	ID         string   `bun:"id,pk"`
	PostalCode *string  `bun:"postal_code,nullzero"`
	Line       string   `bun:"address,notnull"`
	Country    string   `bun:"country,notnull"`
	State      string   `bun:"state,notnull"`
	City       string   `bun:"city,notnull"`
	Lat        *float64 `bun:"lat,nullzero"`
	Lon        *float64 `bun:"lon,nullzero"`

	Auditable
}

// Configuration is the singleton service configuration row.
type Configuration struct {
	bun.BaseModel `bun:"table:configurations"`

	ID                       string            `bun:"id,pk"`
	CheckEmailDeliverability bool              `bun:"check_email_deliverability,notnull,default:false"`
	PasswordPolicyStrength   password.Strength `bun:"password_policy_strength,notnull,default:'min'"`
	JWTAutoRefresh           bool              `bun:"jwt_auto_refresh,notnull,default:false"`

	Auditable
}
