package solution

// Ladder returns a shortest transformation from start to end where each
// step changes one letter and lands on a dictionary word. It returns nil
// when end is unreachable. Neighbors are tried in dictionary order, so
// among equally short paths the earliest-listed words win.
func Ladder(start, end string, words []string) []string {
	inDict := false
	for _, w := range words {
		if w == end {
			inDict = true
			break
		}
	}
	if !inDict {
		return nil
	}

	visited := map[string]bool{start: true}
	queue := [][]string{{start}}
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		for _, w := range words {
			if visited[w] || !oneStep(path[len(path)-1], w) {
				continue
			}
			next := append(append([]string(nil), path...), w)
			if w == end {
				return next
			}
			visited[w] = true
			queue = append(queue, next)
		}
	}
	return nil
}

// oneStep reports whether a and b differ in exactly one position.
func oneStep(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	diff := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			diff++
			if diff > 1 {
				return false
			}
		}
	}
	return diff == 1
}
