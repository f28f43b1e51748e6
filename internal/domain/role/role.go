package role

import (
	"strings"

	"github.com/ecosept/booking-api/internal/models"
)

// Canonical is the normalized role used for every authorization decision.
type Canonical string

const (
	Admin    Canonical = "admin"
	Employee Canonical = "employee"
	Guest    Canonical = "guest"
	Unknown  Canonical = ""
)

// The roles table has drifted across deployments and locales, so a handful
// of historical spellings must keep resolving to the same canonical role.
var synonyms = map[string]Canonical{
	"admin":         Admin,
	"administrator": Admin,
	"администратор": Admin,
	"админ":         Admin,
	"employee":      Employee,
	"сотрудник":     Employee,
	"работник":      Employee,
	"guest":         Guest,
	"гость":         Guest,
}

// Resolve maps a stored role to its canonical value. The seed ids 1 and 2
// short-circuit before any name matching; everything else goes through the
// case-insensitive synonym table.
func Resolve(roleID uint, name string) Canonical {
	switch roleID {
	case models.RoleIDAdmin:
		return Admin
	case models.RoleIDEmployee:
		return Employee
	}

	if c, ok := synonyms[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return Unknown
}

// In reports whether c is one of the allowed canonical roles.
func (c Canonical) In(allowed ...Canonical) bool {
	for _, a := range allowed {
		if c == a {
			return true
		}
	}
	return false
}
