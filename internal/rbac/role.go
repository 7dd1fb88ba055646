package rbac

// Role identifies a user's global authorization tier. Roles form a strict
// total order: USER < ADMIN < SUPERUSER. A higher role inherits every
// permission of the roles below it.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
	RoleSuperuser Role = "SUPERUSER"
)

// roleLevels defines the hierarchy position for each role. Higher means more
// privileged.
var roleLevels = map[Role]int{
	RoleUser:      1,
	RoleAdmin:     2,
	RoleSuperuser: 3,
}

// Level returns the hierarchy level of the role (1 for USER, 2 for ADMIN,
// 3 for SUPERUSER). Unknown roles return 0, ranking below every valid role.
func (r Role) Level() int {
	return roleLevels[r]
}

// IsValid reports whether r is one of the defined roles.
func (r Role) IsValid() bool {
	_, ok := roleLevels[r]
	return ok
}

// AllRoles lists every defined role in ascending hierarchy order.
func AllRoles() []Role {
	return []Role{RoleUser, RoleAdmin, RoleSuperuser}
}
