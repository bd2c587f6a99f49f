package domain

import "time"

type Role string

const (
	RoleUser     Role = "USER"
	RoleLandlord Role = "LANDLORD"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole maps a free-form role string to a known role,
// defaulting to USER for anything unrecognized.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleLandlord:
		return RoleLandlord
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
