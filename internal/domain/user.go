package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the user role. Exactly two roles exist and every interface carries
// the role explicitly.
type Role string

const (
	RoleAgent   Role = "agent"
	RoleManager Role = "manager"
)

// Valid reports whether the role is one of the two known roles
func (r Role) Valid() bool {
	return r == RoleAgent || r == RoleManager
}

type User struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Active       bool       `json:"active"`
	InvitedBy    *string    `json:"invited_by,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Claims struct {
	UserID        string
	UserFirstName string
	UserLastName  string
	UserEmail     string
	UserActive    bool
	UserRole      Role
	jwt.RegisteredClaims
}
