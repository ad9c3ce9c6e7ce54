package utils

import (
	"strings"
)

const allowedSpecial = "!@#$%^&*()_+-=[]{}|;:'\",.<>?/"

func isASCIIAlphaNumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// IsAlphaNumericOrSpecial Проверяет что в строке только большие и маленькие буквы английского алфавита, цифры и разрешённые спецсимволы.
func IsAlphaNumericOrSpecial(s string) bool {
	if len(s) == 0 {
		return false
	}

	for _, r := range s {
		if isASCIIAlphaNumeric(r) || strings.ContainsRune(allowedSpecial, r) {
			continue
		}
		return false
	}

	return true
}

// IsLoginSafe Проверяет, что логин состоит из латинских букв, цифр, '_', '.' и '-'.
func IsLoginSafe(s string) bool {
	if len(s) == 0 {
		return false
	}

	for _, r := range s {
		if isASCIIAlphaNumeric(r) || r == '_' || r == '.' || r == '-' {
			continue
		}
		return false
	}

	return true
}
