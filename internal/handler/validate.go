package handler

import "strings"

// Field validation mirrors the rules the clients were built against: short
// names, malformed phone numbers, emails without "@" and short passwords are
// each reported with their own message, and all failures for a request are
// returned together as one list.

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// validateUserFields checks the common signup/user-creation fields and
// returns the accumulated error messages, empty when everything passes.
func validateUserFields(name, phone, email, password string) []string {
	var errs []string
	if len(strings.TrimSpace(name)) < 2 {
		errs = append(errs, "Name is required and should be at least 2 characters")
	}
	if len(phone) != 10 || !digitsOnly(phone) {
		errs = append(errs, "Phone number should be 10 characters and have digits only")
	}
	if email == "" || !strings.Contains(email, "@") {
		errs = append(errs, "A valid email is required")
	}
	if len(password) < 8 {
		errs = append(errs, "Password should be at least 8 characters")
	}
	return errs
}
