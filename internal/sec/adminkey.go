package sec

import "crypto/subtle"

// CheckAdminKey reports whether got matches the configured admin secret. The
// comparison is constant time and an empty configured secret never matches,
// so a misconfigured service fails closed.
func CheckAdminKey(got, want string) bool {
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
