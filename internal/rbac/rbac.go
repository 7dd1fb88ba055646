// Package rbac answers authorization questions from a static role hierarchy
// and permission table. All functions are pure decision functions; role
// assignment itself is the user service's concern.
package rbac

// HasPermission reports whether role holds the (resource, action) permission,
// either directly or inherited from a lower role. Inheritance is strictly
// upward: a SUPERUSER holds every USER and ADMIN permission even when not
// listed for SUPERUSER. The union is recomputed per call; the table is static
// for the process lifetime so there is nothing worth caching.
func HasPermission(role Role, resource Resource, action Action) bool {
	level := role.Level()
	if level == 0 {
		return false
	}
	for _, r := range AllRoles() {
		if r.Level() > level {
			continue
		}
		for _, p := range rolePermissions[r] {
			if p.Resource == resource && p.Action == action {
				return true
			}
		}
	}
	return false
}

// CanAccessUserData reports whether accessorRole may view data belonging to a
// user of targetRole. SUPERUSER views anyone; otherwise access follows the
// hierarchy level, which permits same-role pairs (ADMIN may view ADMIN).
// Callers wanting true "own data only" semantics must additionally compare
// identities; this function only expresses the role-tier boundary. Note this
// is deliberately looser than CanManageUser, which is the mutation boundary.
func CanAccessUserData(accessorRole, targetRole Role) bool {
	if !accessorRole.IsValid() || !targetRole.IsValid() {
		return false
	}
	if accessorRole == RoleSuperuser {
		return true
	}
	return accessorRole.Level() >= targetRole.Level()
}

// roleCreationWhitelist enumerates which roles each role may assign to a new
// user. This is an explicit whitelist, not derived from the hierarchy:
// SUPERUSER intentionally cannot create another SUPERUSER through this path.
var roleCreationWhitelist = map[Role][]Role{
	RoleSuperuser: {RoleAdmin, RoleUser},
	RoleAdmin:     {RoleUser},
	RoleUser:      {},
}

// CanCreateUserWithRole reports whether creatorRole may create a user holding
// targetRole.
func CanCreateUserWithRole(creatorRole, targetRole Role) bool {
	for _, allowed := range roleCreationWhitelist[creatorRole] {
		if allowed == targetRole {
			return true
		}
	}
	return false
}

// AllowedRolesToCreate enumerates the roles creatorRole may assign to new
// users, for populating selection UIs. Stays in lockstep with
// CanCreateUserWithRole by reading the same whitelist.
func AllowedRolesToCreate(creatorRole Role) []Role {
	allowed := roleCreationWhitelist[creatorRole]
	out := make([]Role, len(allowed))
	copy(out, allowed)
	return out
}

// CanManageUser reports whether managerRole may edit or deactivate a user of
// targetRole. SUPERUSER manages everyone except other SUPERUSERs, so
// superusers cannot deactivate each other through this path; ADMIN manages
// USER only.
func CanManageUser(managerRole, targetRole Role) bool {
	switch managerRole {
	case RoleSuperuser:
		return targetRole.IsValid() && targetRole != RoleSuperuser
	case RoleAdmin:
		return targetRole == RoleUser
	default:
		return false
	}
}
