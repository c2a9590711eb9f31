package validators

import "strings"

// NormalizePhone keeps digits only.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhoneValid aceita DDD + número, com ou sem o 55.
func IsPhoneValid(phone string) bool {
	n := len(NormalizePhone(phone))
	return n >= 10 && n <= 13
}
