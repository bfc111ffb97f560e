package validators

import "regexp"

var (
	slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	otpRe  = regexp.MustCompile(`^[0-9]{6}$`)
)

// IsSlug accepts 3 to 50 lowercase alphanumerics separated by single hyphens.
func IsSlug(s string) bool {
	return len(s) >= 3 && len(s) <= 50 && slugRe.MatchString(s)
}

func IsOTP(s string) bool {
	return otpRe.MatchString(s)
}
