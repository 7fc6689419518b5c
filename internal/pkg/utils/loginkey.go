package utils

import "strings"

// NormalizeLoginKey derives the deterministic login key for a manager from
// their display name: lowercased, runs of whitespace collapsed to a single
// dot, everything outside [a-z0-9.] stripped. The same function runs at
// account creation and at login, so lookup is a single indexed equality match.
func NormalizeLoginKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.Join(strings.Fields(key), ".")

	var b strings.Builder
	for _, r := range key {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ManagerEmail synthesizes the unique login identifier registered for a
// manager: the login key plus the last four characters of the employee id,
// which keeps identifiers unique even for duplicate names.
func ManagerEmail(name, employeeID string) string {
	suffix := employeeID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return NormalizeLoginKey(name) + "." + suffix + "@rollcall.local"
}
