package order

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrRoleForbidden is returned when the actor's role does not permit
	// setting the requested target status, regardless of lifecycle ordering.
	ErrRoleForbidden = errors.New("role is not permitted to set this status")

	// ErrActorNotParty is returned when the acting user is not a party to the
	// order (not its customer, merchant, or assigned driver) and is not an admin.
	ErrActorNotParty = errors.New("actor is not a party to this order")

	// ErrActorIsNotConstructed is returned when attempting to use an improperly
	// initialized Actor. Actors must be created via the NewActor constructor.
	ErrActorIsNotConstructed = errs.NewValueIsRequiredError(
		"actor must be created via NewActor constructor")
)

// Role identifies the kind of user acting on an order.
// Each role is permitted to set a fixed subset of target statuses;
// the mapping is static and never depends on order state.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is the user who placed the order. Customers may only cancel.
	RoleCustomer

	// RoleMerchant is the business fulfilling the order.
	RoleMerchant

	// RoleDriver is the courier delivering the order.
	RoleDriver

	// RoleAdmin is an operator with unrestricted status permissions.
	// Admin actions still obey the lifecycle ordering guard.
	RoleAdmin
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleMerchant: "merchant",
		RoleDriver:   "driver",
		RoleAdmin:    "admin",
	}
}

// getValidRoleStrings returns a map of only valid Role values.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleCustomer: "customer",
		RoleMerchant: "merchant",
		RoleDriver:   "driver",
		RoleAdmin:    "admin",
	}
}

// getRolePermissions returns the static role permission table: the set of
// target statuses each role may set. Admin is handled separately in MaySet
// because it may set any status.
func getRolePermissions() map[Role]map[Status]bool {
	return map[Role]map[Status]bool{
		RoleCustomer: {
			Cancelled: true,
		},
		RoleMerchant: {
			Accepted:  true,
			Preparing: true,
			Cancelled: true,
		},
		RoleDriver: {
			PickedUp:  true,
			Delivered: true,
		},
	}
}

// RoleFromString parses a Role from its string representation.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// This method implements the fmt.Stringer interface and is safe
// to call on any Role value, including invalid ones.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// MaySet checks the role permission table for the target status.
//
// Permissions:
//   - customer: cancelled
//   - merchant: accepted, preparing, cancelled
//   - driver:   picked_up, delivered
//   - admin:    any status
//
// Returns nil when the role may set target, or an error wrapping
// ErrRoleForbidden otherwise. MaySet checks permission only; the
// lifecycle ordering guard is enforced separately.
func (r Role) MaySet(target Status) error {
	if err := errors.Join(r.Validate(), target.Validate()); err != nil {
		return err
	}

	if r == RoleAdmin {
		return nil
	}

	if !getRolePermissions()[r][target] {
		return fmt.Errorf("%w: %s cannot set %s", ErrRoleForbidden, r, target)
	}

	return nil
}

// Actor is the identity on whose behalf an order operation runs.
// It pairs a user ID with a role and is an immutable value object.
// The zero value of Actor is invalid - use the constructor to create instances.
type Actor struct {
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor creates a new Actor with the specified identity and role.
//
// Parameters:
//   - id: The acting user's unique identifier (must be a valid UUID)
//   - role: The acting user's role (must be a valid Role)
//
// Returns:
//   - Actor: A valid actor if all validations pass
//   - error: Validation error if either parameter is invalid
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	actor := Actor{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(actor.setID(id), actor.setRole(role)); err != nil {
		return Actor{}, err
	}

	return actor, nil
}

// Validate checks if the Actor was properly constructed using the constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the acting user's unique identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the acting user's role.
func (a Actor) Role() Role {
	return a.role
}

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
