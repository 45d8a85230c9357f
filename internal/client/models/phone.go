package models

import "strings"

// NormalizePhoneNumber rewrites a Nigerian number into +234 international form:
// non-digits are dropped, a trunk 0 is removed and the 234 prefix is added when
// missing.
func NormalizePhoneNumber(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimPrefix(b.String(), "0")
	if !strings.HasPrefix(cleaned, "234") {
		cleaned = "234" + cleaned
	}
	return "+" + cleaned
}
