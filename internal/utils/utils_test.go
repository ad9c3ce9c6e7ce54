package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIsAlphaNumericOrSpecial Проверяет допустимые символы пароля.
func TestIsAlphaNumericOrSpecial(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect bool
	}{
		{"строчные буквы", "abcdefghijklmnopqrstuvwxyz", true},
		{"прописные буквы", "ABCDEFGHIJKLMNOPQRSTUVWXYZ", true},
		{"цифры", "0123456789", true},
		{"все спецсимволы", "!@#$%^&*()_+-=[]{}|;:'\",.<>?/", true},
		{"смешанная строка", "Passw0rd!", true},
		{"пустая строка", "", false},
		{"пробел", "pass word", false},
		{"кириллица", "пароль", false},
		{"обратный слэш", `pass\word`, false},
		{"табуляция", "pass\tword", false},
		{"эмодзи", "pass😀", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, IsAlphaNumericOrSpecial(tt.input))
		})
	}
}

// TestIsLoginSafe Проверяет допустимые символы логина.
func TestIsLoginSafe(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect bool
	}{
		{"буквы и цифры", "alice42", true},
		{"точка, дефис и подчёркивание", "john.doe-smith_1", true},
		{"пустая строка", "", false},
		{"собака", "alice@home", false},
		{"пробел", "alice smith", false},
		{"кириллица", "алиса", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, IsLoginSafe(tt.input))
		})
	}
}
