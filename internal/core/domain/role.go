package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of actors the portal knows about.
type Role uint8

const (
	RoleStudent Role = iota + 1
	RoleRecruiter
	RoleTPO
)

// ParseRole converts a wire name into a Role. "company" is accepted as an
// alias of "recruiter" because the registration form uses both spellings.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "student":
		return RoleStudent, nil
	case "recruiter", "company":
		return RoleRecruiter, nil
	case "tpo":
		return RoleTPO, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleRecruiter:
		return "recruiter"
	case RoleTPO:
		return "tpo"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleRecruiter, RoleTPO:
		return true
	default:
		return false
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("marshal role: invalid value %d", uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
