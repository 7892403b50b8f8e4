package domain

// Action is a named operation subject to role-based authorization.
type Action string

const (
	ActionManageTenants   Action = "tenants:manage"
	ActionManageEmployees Action = "employees:manage"
	ActionManageProducts  Action = "products:manage"
	ActionEditVariantID   Action = "variants:edit-identity"
	ActionAdjustStock     Action = "stock:adjust"
	ActionManageCustomers Action = "customers:manage"
	ActionOperateCash     Action = "cash:operate"
	ActionCreateSale      Action = "sales:create"
	ActionViewReports     Action = "reports:view"
)

// capabilities maps each role to the actions it may perform. Tenant
// scoping is separate: every query still filters by the token's tenant.
var capabilities = map[Role]map[Action]bool{
	RoleSuperAdmin: {
		ActionManageTenants: true,
	},
	RoleAdmin: {
		ActionManageEmployees: true,
		ActionManageProducts:  true,
		ActionEditVariantID:   true,
		ActionAdjustStock:     true,
		ActionManageCustomers: true,
		ActionOperateCash:     true,
		ActionCreateSale:      true,
		ActionViewReports:     true,
	},
	RoleEmployee: {
		ActionAdjustStock:     true,
		ActionManageCustomers: true,
		ActionOperateCash:     true,
		ActionCreateSale:      true,
		ActionViewReports:     true,
	},
}

// Can reports whether the given role may perform action.
func Can(role Role, action Action) bool {
	return capabilities[role][action]
}

// IsTenantRole reports whether the role belongs inside a tenant. Super
// admins operate across tenants and are rejected by tenant endpoints.
func IsTenantRole(role Role) bool {
	return role == RoleAdmin || role == RoleEmployee
}
