package solution

// Isomorphic reports whether every character of s1 maps to a single
// consistent character of s2.
func Isomorphic(s1, s2 string) bool {
	if len(s1) != len(s2) {
		return false
	}
	mapping := make(map[byte]byte, len(s1))
	for i := 0; i < len(s1); i++ {
		if to, ok := mapping[s1[i]]; ok && to != s2[i] {
			return false
		}
		mapping[s1[i]] = s2[i]
	}
	return true
}
