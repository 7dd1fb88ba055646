package rbac

import (
	"fmt"

	"github.com/famled/family_finance_app/internal/apperrors"
)

// RequirePermission returns a guard that fails with a descriptive error when
// the given role does not hold the (resource, action) permission. Intended as
// an assertion at the top of a protected operation; call sites that want to
// branch instead of abort should use HasPermission directly.
func RequirePermission(resource Resource, action Action) func(Role) error {
	return func(role Role) error {
		if !HasPermission(role, resource, action) {
			return fmt.Errorf("%w: role %s lacks permission %s:%s", apperrors.ErrForbidden, role, resource, action)
		}
		return nil
	}
}

// RequireRole returns a guard that fails unless the given role is at or above
// the required role in the hierarchy.
func RequireRole(required Role) func(Role) error {
	return func(role Role) error {
		if !role.IsValid() || role.Level() < required.Level() {
			return fmt.Errorf("%w: role %s or above required, have %s", apperrors.ErrForbidden, required, role)
		}
		return nil
	}
}
