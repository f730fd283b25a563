package account

import (
	"time"

	"github.com/uptrace/bun"
)

// Role decides the post-login landing area.
type Role string

const (
	RoleParent Role = "parent"
	RoleAdmin  Role = "admin"
)

// Account is a guardian (or admin) login. Students hang off the guardian via
// their guardian_id foreign key.
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email,unique,notnull" json:"email"`
	Password  string    `bun:"password,notnull" json:"-"`
	Role      Role      `bun:"role,notnull" json:"role"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"-"`
}
