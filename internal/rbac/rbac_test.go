package rbac_test

import (
	"testing"

	"github.com/famled/family_finance_app/internal/apperrors"
	"github.com/famled/family_finance_app/internal/rbac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPermission_DirectGrants(t *testing.T) {
	assert.True(t, rbac.HasPermission(rbac.RoleUser, rbac.ResourceIncome, rbac.ActionCreate))
	assert.True(t, rbac.HasPermission(rbac.RoleUser, rbac.ResourceExpense, rbac.ActionReadOwn))
	assert.True(t, rbac.HasPermission(rbac.RoleAdmin, rbac.ResourceCategory, rbac.ActionCreate))
	assert.True(t, rbac.HasPermission(rbac.RoleSuperuser, rbac.ResourceUser, rbac.ActionDelete))
}

func TestHasPermission_NoDownwardInheritance(t *testing.T) {
	// user:delete is granted to SUPERUSER only; lower roles never inherit downward.
	assert.False(t, rbac.HasPermission(rbac.RoleUser, rbac.ResourceUser, rbac.ActionDelete))
	assert.False(t, rbac.HasPermission(rbac.RoleAdmin, rbac.ResourceUser, rbac.ActionDelete))
	assert.False(t, rbac.HasPermission(rbac.RoleUser, rbac.ResourceCategory, rbac.ActionCreate))
}

func TestHasPermission_InheritanceMonotonicity(t *testing.T) {
	// Every permission held by USER must be held by ADMIN and SUPERUSER too.
	userGrants := []rbac.Permission{
		{Resource: rbac.ResourceExpense, Action: rbac.ActionCreate},
		{Resource: rbac.ResourceExpense, Action: rbac.ActionReadOwn},
		{Resource: rbac.ResourceExpense, Action: rbac.ActionUpdateOwn},
		{Resource: rbac.ResourceExpense, Action: rbac.ActionDeleteOwn},
		{Resource: rbac.ResourceIncome, Action: rbac.ActionCreate},
		{Resource: rbac.ResourceIncome, Action: rbac.ActionReadOwn},
		{Resource: rbac.ResourceCategory, Action: rbac.ActionRead},
		{Resource: rbac.ResourceDashboard, Action: rbac.ActionRead},
		{Resource: rbac.ResourceFamily, Action: rbac.ActionRead},
	}
	for _, p := range userGrants {
		require.True(t, rbac.HasPermission(rbac.RoleUser, p.Resource, p.Action))
		assert.True(t, rbac.HasPermission(rbac.RoleAdmin, p.Resource, p.Action), "ADMIN should inherit %s:%s", p.Resource, p.Action)
		assert.True(t, rbac.HasPermission(rbac.RoleSuperuser, p.Resource, p.Action), "SUPERUSER should inherit %s:%s", p.Resource, p.Action)
	}
}

func TestHasPermission_UnknownRole(t *testing.T) {
	assert.False(t, rbac.HasPermission(rbac.Role("GUEST"), rbac.ResourceExpense, rbac.ActionCreate))
}

func TestCanAccessUserData(t *testing.T) {
	// SUPERUSER accesses anyone.
	for _, target := range rbac.AllRoles() {
		assert.True(t, rbac.CanAccessUserData(rbac.RoleSuperuser, target))
	}
	// ADMIN accesses at or below its own level, not above.
	assert.True(t, rbac.CanAccessUserData(rbac.RoleAdmin, rbac.RoleUser))
	assert.True(t, rbac.CanAccessUserData(rbac.RoleAdmin, rbac.RoleAdmin))
	assert.False(t, rbac.CanAccessUserData(rbac.RoleAdmin, rbac.RoleSuperuser))
	// USER reaches only its own tier.
	assert.True(t, rbac.CanAccessUserData(rbac.RoleUser, rbac.RoleUser))
	assert.False(t, rbac.CanAccessUserData(rbac.RoleUser, rbac.RoleAdmin))
	assert.False(t, rbac.CanAccessUserData(rbac.RoleUser, rbac.RoleSuperuser))
	// Invalid roles never gain access.
	assert.False(t, rbac.CanAccessUserData(rbac.Role("GUEST"), rbac.RoleUser))
	assert.False(t, rbac.CanAccessUserData(rbac.RoleSuperuser, rbac.Role("GUEST")))
}

func TestRoleCreationWhitelist(t *testing.T) {
	assert.True(t, rbac.CanCreateUserWithRole(rbac.RoleSuperuser, rbac.RoleAdmin))
	assert.True(t, rbac.CanCreateUserWithRole(rbac.RoleSuperuser, rbac.RoleUser))
	assert.False(t, rbac.CanCreateUserWithRole(rbac.RoleSuperuser, rbac.RoleSuperuser))
	assert.True(t, rbac.CanCreateUserWithRole(rbac.RoleAdmin, rbac.RoleUser))
	assert.False(t, rbac.CanCreateUserWithRole(rbac.RoleAdmin, rbac.RoleAdmin))
	assert.False(t, rbac.CanCreateUserWithRole(rbac.RoleUser, rbac.RoleUser))
}

func TestAllowedRolesToCreate_MatchesWhitelist(t *testing.T) {
	// The list and the predicate must agree exactly for every role pair.
	for _, creator := range rbac.AllRoles() {
		allowed := rbac.AllowedRolesToCreate(creator)
		allowedSet := make(map[rbac.Role]bool, len(allowed))
		for _, r := range allowed {
			allowedSet[r] = true
		}
		for _, target := range rbac.AllRoles() {
			assert.Equal(t, rbac.CanCreateUserWithRole(creator, target), allowedSet[target],
				"mismatch for creator=%s target=%s", creator, target)
		}
	}
}

func TestCanManageUser_Exclusions(t *testing.T) {
	assert.True(t, rbac.CanManageUser(rbac.RoleSuperuser, rbac.RoleAdmin))
	assert.True(t, rbac.CanManageUser(rbac.RoleSuperuser, rbac.RoleUser))
	assert.False(t, rbac.CanManageUser(rbac.RoleSuperuser, rbac.RoleSuperuser))
	assert.True(t, rbac.CanManageUser(rbac.RoleAdmin, rbac.RoleUser))
	assert.False(t, rbac.CanManageUser(rbac.RoleAdmin, rbac.RoleAdmin))
	assert.False(t, rbac.CanManageUser(rbac.RoleAdmin, rbac.RoleSuperuser))
	assert.False(t, rbac.CanManageUser(rbac.RoleUser, rbac.RoleUser))
}

func TestRequirePermission(t *testing.T) {
	guard := rbac.RequirePermission(rbac.ResourceUser, rbac.ActionDelete)

	err := guard(rbac.RoleAdmin)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Contains(t, err.Error(), "user:delete")

	assert.NoError(t, guard(rbac.RoleSuperuser))
}

func TestRequireRole(t *testing.T) {
	guard := rbac.RequireRole(rbac.RoleAdmin)

	err := guard(rbac.RoleUser)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	assert.NoError(t, guard(rbac.RoleAdmin))
	assert.NoError(t, guard(rbac.RoleSuperuser))
	assert.Error(t, guard(rbac.Role("GUEST")))
}
