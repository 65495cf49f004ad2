package structs

import (
	"time"

	"github.com/google/uuid"
)

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

type AuthClaims struct {
	Sub      uuid.UUID `json:"sub"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Iat      time.Time `json:"iat"`
	Exp      time.Time `json:"exp"`
	Jti      uuid.UUID `json:"jti"`
}

func (c *AuthClaims) IsAdmin() bool {
	return c != nil && c.Role == "admin"
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=2,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=100"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}
