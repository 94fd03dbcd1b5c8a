package order

import (
	"fmt"

	"procurement/internal/pkg/errs"
)

// Role is the closed enumeration of actor roles that may trigger status
// transitions. Transition authorization is expressed against these values,
// never against raw role strings.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleAdmin is the operator role; it may drive every edge of the
	// fulfillment workflow.
	RoleAdmin

	// RolePreparateur prepares goods and may hand orders over to delivery.
	RolePreparateur

	// RoleLivreur delivers orders and may confirm or cancel a delivery.
	RoleLivreur

	// RoleClient is a shop client. Clients place orders but drive no
	// fulfillment transitions.
	RoleClient
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:     "UNKNOWN",
		RoleAdmin:       "ADMIN",
		RolePreparateur: "PREPARATEUR",
		RoleLivreur:     "LIVREUR",
		RoleClient:      "CLIENT",
	}
}

// RoleFromString parses a wire role name ("ADMIN", "PREPARATEUR", ...).
// Returns an error for unknown names.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%s is not a valid role", s))
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}
