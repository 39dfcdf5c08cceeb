// Package validate holds the stateless form validation helpers shared by
// the signup, checkout and review flows.
package validate

import "strings"

// Email accepts local@domain.tld shaped strings: no whitespace, exactly one
// "@", and at least one "." in the domain part.
func Email(email string) bool {
	if strings.ContainsAny(email, " \t\n") {
		return false
	}

	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}

	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")

	// dot must exist and leave non-empty labels on both sides
	return dot > 0 && dot < len(domain)-1
}

// Password requires a minimum length of 6 characters.
func Password(password string) bool {
	return len(password) >= 6
}

type Strength struct {
	Level int
	Label string
}

// PasswordStrength classifies by length only: 1-5 weak, 6-9 medium, 10+
// strong.
func PasswordStrength(password string) Strength {
	switch n := len(password); {
	case n == 0:
		return Strength{Level: 0, Label: ""}
	case n < 6:
		return Strength{Level: 1, Label: "Weak"}
	case n < 10:
		return Strength{Level: 2, Label: "Medium"}
	default:
		return Strength{Level: 3, Label: "Strong"}
	}
}

// Phone is optional: empty is valid, otherwise exactly 10 digits must
// remain after stripping formatting characters.
func Phone(phone string) bool {
	if phone == "" {
		return true
	}

	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}

	return digits == 10
}
