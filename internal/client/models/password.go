package models

// PasswordStrength scores a password from 0 to 5: one point each for
// length >= 8, an upper-case letter, a lower-case letter, a digit and any
// other character.
func PasswordStrength(password []byte) int {
	var upper, lower, digit, other bool
	n := 0
	for _, r := range string(password) {
		n++
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}

	score := 0
	for _, ok := range []bool{n >= 8, upper, lower, digit, other} {
		if ok {
			score++
		}
	}
	return score
}

func StrengthLabel(score int) string {
	switch {
	case score <= 2:
		return "Weak"
	case score == 3:
		return "Medium"
	default:
		return "Strong"
	}
}
