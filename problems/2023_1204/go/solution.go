package solution

// FirstRecurring returns the first character that appears a second time
// while scanning s left to right. ok is false when every character is
// unique.
func FirstRecurring(s string) (ch rune, ok bool) {
	seen := make(map[rune]struct{}, len(s))
	for _, r := range s {
		if _, dup := seen[r]; dup {
			return r, true
		}
		seen[r] = struct{}{}
	}
	return 0, false
}
