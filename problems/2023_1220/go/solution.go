package solution

// ConcatIndices returns every index in s where a concatenation of all
// words (each used exactly once, in any order) begins. All words have
// the same length.
func ConcatIndices(s string, words []string) []int {
	if len(words) == 0 {
		return nil
	}
	wordLen := len(words[0])
	total := wordLen * len(words)
	if wordLen == 0 || total > len(s) {
		return nil
	}

	need := make(map[string]int, len(words))
	for _, w := range words {
		need[w]++
	}

	var out []int
	for i := 0; i+total <= len(s); i++ {
		if matchesAt(s, i, wordLen, len(words), need) {
			out = append(out, i)
		}
	}
	return out
}

func matchesAt(s string, start, wordLen, count int, need map[string]int) bool {
	seen := make(map[string]int, len(need))
	for j := 0; j < count; j++ {
		w := s[start+j*wordLen : start+(j+1)*wordLen]
		if seen[w] >= need[w] {
			return false
		}
		seen[w]++
	}
	return true
}
