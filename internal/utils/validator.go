package utils

import "regexp"

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	letterRegex   = regexp.MustCompile(`[a-zA-Z]`)
	digitRegex    = regexp.MustCompile(`\d`)
)

// IsValidUsername reports whether the username is 3-20 characters of
// letters, digits and underscores.
func IsValidUsername(username string) bool {
	if len(username) < 3 || len(username) > 20 {
		return false
	}
	return usernameRegex.MatchString(username)
}

// IsValidEmail reports whether the address looks like a deliverable email.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPassword reports whether the password is 8-20 characters with at
// least one letter and one digit.
func IsValidPassword(password string) bool {
	if len(password) < 8 || len(password) > 20 {
		return false
	}
	return letterRegex.MatchString(password) && digitRegex.MatchString(password)
}
