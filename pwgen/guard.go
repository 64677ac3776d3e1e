package pwgen

// MaxOccurrences is the number of times a single character may appear in a
// password before the password is rejected.
const MaxOccurrences = 3

// HasForbiddenRun reports whether any character of password occurs more than
// MaxOccurrences times in total, consecutive or not.
func HasForbiddenRun(password string) bool {
	counts := make(map[rune]int)
	for _, r := range password {
		counts[r]++
		if counts[r] > MaxOccurrences {
			return true
		}
	}
	return false
}
