package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is a closed set: every switch over it must handle both values.
type Role uint8

const (
	RoleMember Role = iota + 1
	RoleLibrarian
)

func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleLibrarian:
		return "librarian"
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

func ParseRole(s string) (Role, error) {
	switch s {
	case "member":
		return RoleMember, nil
	case "librarian":
		return RoleLibrarian, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	role, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Caller is the identity resolved for a request. A nil *Caller is an
// anonymous request.
type Caller struct {
	ID   uuid.UUID
	Role Role
}

type User struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Email string    `json:"email" db:"email"`
	Role  string    `json:"role" db:"role"`
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
