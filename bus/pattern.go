package bus

// Matches reports whether the pattern covers the whole topic.
func (p Pattern) Matches(topic Topic) bool {
	return matchGlob(string(p), string(topic))
}

// matchGlob runs an iterative backtracking match over byte positions. On a
// mismatch after a star the topic position of the last star advances by one
// and matching resumes behind it.
func matchGlob(pattern, topic string) bool {
	pi, ti := 0, 0
	star, starTi := -1, 0
	for ti < len(topic) {
		switch {
		// A star is always a wildcard, even when the topic byte is '*'.
		case pi < len(pattern) && pattern[pi] == '*':
			star = pi
			starTi = ti
			pi++
		case pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == topic[ti]):
			pi++
			ti++
		case star >= 0:
			pi = star + 1
			starTi++
			ti = starTi
		default:
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}
