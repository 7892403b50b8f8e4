package domain

import "testing"

func TestCan(t *testing.T) {
	tests := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleSuperAdmin, ActionManageTenants, true},
		{RoleSuperAdmin, ActionCreateSale, false},
		{RoleAdmin, ActionManageTenants, false},
		{RoleAdmin, ActionManageEmployees, true},
		{RoleAdmin, ActionEditVariantID, true},
		{RoleAdmin, ActionCreateSale, true},
		{RoleEmployee, ActionManageEmployees, false},
		{RoleEmployee, ActionManageProducts, false},
		{RoleEmployee, ActionEditVariantID, false},
		{RoleEmployee, ActionAdjustStock, true},
		{RoleEmployee, ActionOperateCash, true},
		{RoleEmployee, ActionCreateSale, true},
		{RoleEmployee, ActionViewReports, true},
		{Role("UNKNOWN"), ActionCreateSale, false},
	}

	for _, tt := range tests {
		if got := Can(tt.role, tt.action); got != tt.want {
			t.Errorf("Can(%s, %s) = %v, want %v", tt.role, tt.action, got, tt.want)
		}
	}
}

func TestIsTenantRole(t *testing.T) {
	if IsTenantRole(RoleSuperAdmin) {
		t.Error("super admin is not a tenant role")
	}
	if !IsTenantRole(RoleAdmin) || !IsTenantRole(RoleEmployee) {
		t.Error("admin and employee are tenant roles")
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentCash, PaymentDebit, PaymentCredit, PaymentTransfer} {
		if !ValidPaymentMethod(m) {
			t.Errorf("expected %s to be valid", m)
		}
	}
	if ValidPaymentMethod("BITCOIN") {
		t.Error("unknown payment method accepted")
	}
	if ValidPaymentMethod("") {
		t.Error("empty payment method accepted")
	}
}

func TestValidPlan(t *testing.T) {
	for _, p := range []PlanType{PlanFreeTrial, PlanMonthly, PlanSemester, PlanAnnual} {
		if !ValidPlan(p) {
			t.Errorf("expected %s to be valid", p)
		}
	}
	if ValidPlan("LIFETIME") {
		t.Error("unknown plan accepted")
	}
}
