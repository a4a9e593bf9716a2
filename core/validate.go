package core

import "strings"

// maxCredentialLength bounds both usernames and passwords.
const maxCredentialLength = 20

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// Sanitize removes angle brackets from raw input. It is a narrow guard against
// markup being echoed back into a page, not a general output encoder.
func Sanitize(raw string) string {
	return angleBrackets.Replace(raw)
}

// IsValidUsername reports whether s is 1-20 ASCII letters, digits or underscores.
func IsValidUsername(s string) bool {
	return isCredentialToken(s)
}

// IsValidPassword applies the username rule to passwords as well, so
// passwords cannot contain symbols or whitespace.
func IsValidPassword(s string) bool {
	return isCredentialToken(s)
}

func isCredentialToken(s string) bool {
	if s == "" || len(s) > maxCredentialLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}
