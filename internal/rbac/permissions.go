package rbac

// Resource names a protected entity type.
type Resource string

const (
	ResourceExpense   Resource = "expense"
	ResourceIncome    Resource = "income"
	ResourceCategory  Resource = "category"
	ResourceFamily    Resource = "family"
	ResourceUser      Resource = "user"
	ResourceCurrency  Resource = "currency"
	ResourceDashboard Resource = "dashboard"
	ResourceReport    Resource = "report"
	ResourceSystem    Resource = "system"
)

// Action names an operation on a resource. Ownership-scoped variants are
// distinct actions (read_own vs read_all); this package never inspects
// record ownership itself.
type Action string

const (
	ActionCreate    Action = "create"
	ActionRead      Action = "read"
	ActionReadOwn   Action = "read_own"
	ActionReadAll   Action = "read_all"
	ActionUpdate    Action = "update"
	ActionUpdateOwn Action = "update_own"
	ActionUpdateAll Action = "update_all"
	ActionDelete    Action = "delete"
	ActionDeleteOwn Action = "delete_own"
	ActionDeleteAll Action = "delete_all"
	ActionManage    Action = "manage"
	ActionAssign    Action = "assign"
)

// Permission is an immutable (resource, action) pair.
type Permission struct {
	Resource Resource
	Action   Action
}

// rolePermissions declares the permissions granted directly to each role.
// A role's effective permission set is the union of its own entry and every
// lower role's entry; the table itself never repeats inherited grants.
var rolePermissions = map[Role][]Permission{
	RoleUser: {
		{ResourceExpense, ActionCreate},
		{ResourceExpense, ActionReadOwn},
		{ResourceExpense, ActionUpdateOwn},
		{ResourceExpense, ActionDeleteOwn},
		{ResourceIncome, ActionCreate},
		{ResourceIncome, ActionReadOwn},
		{ResourceIncome, ActionUpdateOwn},
		{ResourceIncome, ActionDeleteOwn},
		{ResourceCategory, ActionRead},
		{ResourceDashboard, ActionRead},
		{ResourceFamily, ActionRead},
	},
	RoleAdmin: {
		{ResourceExpense, ActionReadAll},
		{ResourceExpense, ActionUpdateAll},
		{ResourceExpense, ActionDeleteAll},
		{ResourceIncome, ActionReadAll},
		{ResourceIncome, ActionUpdateAll},
		{ResourceIncome, ActionDeleteAll},
		{ResourceCategory, ActionCreate},
		{ResourceCategory, ActionUpdate},
		{ResourceCategory, ActionDelete},
		{ResourceUser, ActionCreate},
		{ResourceUser, ActionRead},
		{ResourceUser, ActionUpdate},
		{ResourceFamily, ActionManage},
		{ResourceReport, ActionRead},
	},
	RoleSuperuser: {
		{ResourceUser, ActionDelete},
		{ResourceUser, ActionAssign},
		{ResourceCurrency, ActionManage},
		{ResourceSystem, ActionManage},
	},
}
