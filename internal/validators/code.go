package validators

import "strings"

// NormalizeOnboardingCode trims the input and adds the leading '#' that
// users often leave out when typing a code by hand.
func NormalizeOnboardingCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || strings.HasPrefix(code, "#") {
		return code
	}
	return "#" + code
}
