package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	Id            uuid.UUID `json:"id" bun:"id,pk,type:uuid"`
	Username      string    `json:"username" bun:"username,unique,notnull"`
	Email         string    `json:"email" bun:"email,unique,notnull"`
	PasswordHash  string    `json:"-" bun:"password_hash,notnull"`
	Role          string    `json:"role" bun:"role,notnull,default:'user'"`
	LastLogin     time.Time `json:"last_login" bun:"last_login,nullzero"`
	CreatedAt     time.Time `json:"created_at" bun:"created_at,notnull,default:current_timestamp"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
