package handler

import "testing"

func TestValidateUserFields(t *testing.T) {
	cases := []struct {
		name                            string
		uname, phone, email, password   string
		wantErrs                        int
	}{
		{"all valid", "Wanjiku", "0712345678", "wanjiku@example.com", "longenough", 0},
		{"short name", "W", "0712345678", "wanjiku@example.com", "longenough", 1},
		{"phone too short", "Wanjiku", "07123", "wanjiku@example.com", "longenough", 1},
		{"phone with letters", "Wanjiku", "07123A5678", "wanjiku@example.com", "longenough", 1},
		{"email without at", "Wanjiku", "0712345678", "wanjiku.example.com", "longenough", 1},
		{"short password", "Wanjiku", "0712345678", "wanjiku@example.com", "short", 1},
		{"everything wrong", "", "", "", "", 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := validateUserFields(tc.uname, tc.phone, tc.email, tc.password)
			if len(errs) != tc.wantErrs {
				t.Fatalf("expected %d errors, got %d: %v", tc.wantErrs, len(errs), errs)
			}
		})
	}
}

func TestDigitsOnly(t *testing.T) {
	if !digitsOnly("0712345678") {
		t.Fatalf("expected digits-only to pass")
	}
	if digitsOnly("") || digitsOnly("07-123") || digitsOnly("o712345678") {
		t.Fatalf("expected non-digit inputs to fail")
	}
}
