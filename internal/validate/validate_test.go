package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"a@b.co", true},
		{"first.last@sub.domain.org", true},
		{"", false},
		{"plainaddress", false},
		{"@example.com", false},
		{"user@", false},
		{"user@domain", false},
		{"user@domain.", false},
		{"user name@example.com", false},
		{"user@@example.com", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Email(tt.email), "email %q", tt.email)
	}
}

func TestPassword(t *testing.T) {
	assert.False(t, Password(""))
	assert.False(t, Password("12345"))
	assert.True(t, Password("123456"))
	assert.True(t, Password("a much longer password"))
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		level    int
		label    string
	}{
		{"", 0, ""},
		{"abc", 1, "Weak"},
		{"abcde", 1, "Weak"},
		{"abcdef", 2, "Medium"},
		{"abcdefghi", 2, "Medium"},
		{"abcdefghij", 3, "Strong"},
		{"a very long passphrase", 3, "Strong"},
	}

	for _, tt := range tests {
		got := PasswordStrength(tt.password)
		assert.Equal(t, tt.level, got.Level, "password %q", tt.password)
		assert.Equal(t, tt.label, got.Label, "password %q", tt.password)
	}
}

func TestPhone(t *testing.T) {
	assert.True(t, Phone(""), "empty phone is optional")
	assert.False(t, Phone("12345"))
	assert.True(t, Phone("1234567890"))
	assert.True(t, Phone("(123) 456-7890"))
	assert.False(t, Phone("(123) 456-78901"))
	assert.False(t, Phone("abc"))
}
