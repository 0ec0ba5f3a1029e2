package model

import "testing"

func TestShippingCost(t *testing.T) {
	if got := ShippingCost(5.0, 2.0); got != 10.0 {
		t.Fatalf("expected 10.0, got %v", got)
	}
	if got := ShippingCost(3.5, 0); got != 0 {
		t.Fatalf("expected 0 for zero weight, got %v", got)
	}
}

func TestRoleHelpers(t *testing.T) {
	for _, r := range []string{RoleAdmin, RoleCustomerService, RoleCustomer} {
		if !ValidRole(r) {
			t.Fatalf("expected %q to be valid", r)
		}
	}
	if ValidRole("driver") || ValidRole("") {
		t.Fatalf("unknown roles must be invalid")
	}
	if !StaffRole(RoleAdmin) || !StaffRole(RoleCustomerService) {
		t.Fatalf("admin and customer_service are staff")
	}
	if StaffRole(RoleCustomer) {
		t.Fatalf("customer is not staff")
	}
}
