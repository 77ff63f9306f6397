package interval

import (
	"errors"
	"math/rand"
	"sort"
	"testing"
)

// naiveMax is the per-time-unit oracle: for each unit in [0, n) it collects
// the weights of tasks whose interval contains that unit, sums the top m, and
// keeps the maximum. Only used to cross-check the sweep on small inputs.
func naiveMax(n int, starts, ends, weights []int, m int) int {
	best := 0
	for t := 0; t < n; t++ {
		var active []int
		for i := range starts {
			if starts[i] <= t && t < ends[i] {
				active = append(active, weights[i])
			}
		}
		sort.Sort(sort.Reverse(sort.IntSlice(active)))
		sum := 0
		for i := 0; i < len(active) && i < m; i++ {
			sum += active[i]
		}
		if sum > best {
			best = sum
		}
	}
	return best
}

func TestMaxWeightedConcurrencyScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		n       int
		starts  []int
		ends    []int
		weights []int
		m       int
		want    int
	}{
		{
			name: "two overlapping pairs",
			n:    10,
			starts: []int{1, 2, 3, 4}, ends: []int{3, 4, 5, 6},
			weights: []int{30, 40, 50, 60},
			m:       2,
			want:    110,
		},
		{
			name: "long dominant task",
			n:    10,
			starts: []int{1, 2, 3, 4}, ends: []int{9, 4, 5, 6},
			weights: []int{1000, 40, 50, 60},
			m:       2,
			want:    1060,
		},
		{
			name: "single task",
			n:    5,
			starts: []int{1}, ends: []int{3},
			weights: []int{7},
			m:       1,
			want:    7,
		},
		{
			name: "single task with large limit",
			n:    5,
			starts: []int{1}, ends: []int{3},
			weights: []int{7},
			m:       4,
			want:    7,
		},
		{
			name: "disjoint tasks take the max at m=1",
			n:    20,
			starts: []int{0, 5, 10}, ends: []int{3, 8, 13},
			weights: []int{4, 9, 6},
			m:       1,
			want:    9,
		},
		{
			name: "adjacent boundaries are not concurrent",
			n:    10,
			starts: []int{1, 4}, ends: []int{4, 8},
			weights: []int{50, 70},
			m:       2,
			want:    70,
		},
		{
			name: "limit hides the third task",
			n:    10,
			starts: []int{0, 0, 0}, ends: []int{5, 5, 5},
			weights: []int{10, 20, 30},
			m:       2,
			want:    50,
		},
		{
			name: "equal weights with shared boundary",
			n:    10,
			starts: []int{0, 2, 2}, ends: []int{4, 4, 6},
			weights: []int{5, 5, 5},
			m:       2,
			want:    10,
		},
		{
			name: "zero weight is legitimate",
			n:    4,
			starts: []int{0, 0}, ends: []int{2, 2},
			weights: []int{0, 3},
			m:       1,
			want:    3,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := MaxWeightedConcurrency(tt.n, tt.starts, tt.ends, tt.weights, tt.m)
			if err != nil {
				t.Fatalf("MaxWeightedConcurrency error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
			if naive := naiveMax(tt.n, tt.starts, tt.ends, tt.weights, tt.m); naive != tt.want {
				t.Fatalf("oracle disagrees with fixture: naive=%d want=%d", naive, tt.want)
			}
		})
	}
}

func TestMaxWeightedConcurrencyMatchesOracle(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))

	for iter := 0; iter < 500; iter++ {
		k := 1 + rng.Intn(8)
		n := 20
		starts := make([]int, k)
		ends := make([]int, k)
		weights := make([]int, k)
		for i := 0; i < k; i++ {
			starts[i] = rng.Intn(n - 1)
			ends[i] = starts[i] + 1 + rng.Intn(n-starts[i]-1)
			weights[i] = 1 + rng.Intn(100)
		}
		m := 1 + rng.Intn(k)

		got, err := MaxWeightedConcurrency(n, starts, ends, weights, m)
		if err != nil {
			t.Fatalf("iter %d: unexpected error: %v", iter, err)
		}
		want := naiveMax(n, starts, ends, weights, m)
		if got != want {
			t.Fatalf("iter %d: got %d, want %d (starts=%v ends=%v weights=%v m=%d)",
				iter, got, want, starts, ends, weights, m)
		}
	}
}

func TestMaxWeightedConcurrencyMonotonicInM(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(2))

	for iter := 0; iter < 100; iter++ {
		k := 2 + rng.Intn(6)
		starts := make([]int, k)
		ends := make([]int, k)
		weights := make([]int, k)
		for i := 0; i < k; i++ {
			starts[i] = rng.Intn(15)
			ends[i] = starts[i] + 1 + rng.Intn(5)
			weights[i] = 1 + rng.Intn(100)
		}

		prev := -1
		for m := 1; m <= k; m++ {
			got, err := MaxWeightedConcurrency(20, starts, ends, weights, m)
			if err != nil {
				t.Fatalf("iter %d m=%d: %v", iter, m, err)
			}
			if got < prev {
				t.Fatalf("iter %d: result decreased from %d to %d as m rose to %d",
					iter, prev, got, m)
			}
			prev = got
		}
	}
}

func TestMaxWeightedConcurrencyDisjointSumsAll(t *testing.T) {
	t.Parallel()
	starts := []int{0, 10, 20, 30}
	ends := []int{5, 15, 25, 35}
	weights := []int{4, 9, 6, 1}

	// No two intervals overlap, so a limit covering all tasks still only ever
	// sees one at a time.
	got, err := MaxWeightedConcurrency(40, starts, ends, weights, len(starts))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 9 {
		t.Fatalf("got %d, want 9", got)
	}
}

func TestMaxWeightedConcurrencyInvalidArguments(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		starts  []int
		ends    []int
		weights []int
		m       int
	}{
		{name: "empty input", starts: nil, ends: nil, weights: nil, m: 1},
		{name: "length mismatch", starts: []int{1, 2}, ends: []int{3}, weights: []int{5, 5}, m: 1},
		{name: "zero m", starts: []int{1}, ends: []int{2}, weights: []int{5}, m: 0},
		{name: "negative m", starts: []int{1}, ends: []int{2}, weights: []int{5}, m: -3},
		{name: "empty interval", starts: []int{2}, ends: []int{2}, weights: []int{5}, m: 1},
		{name: "inverted interval", starts: []int{5}, ends: []int{2}, weights: []int{5}, m: 1},
		{name: "negative weight", starts: []int{1}, ends: []int{2}, weights: []int{-1}, m: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := MaxWeightedConcurrency(10, tt.starts, tt.ends, tt.weights, tt.m)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestMaxWeightedConcurrencyBigInput(t *testing.T) {
	t.Parallel()
	// All tasks start together; only the two heaviest can ever be selected.
	const k = 1000
	starts := make([]int, k)
	ends := make([]int, k)
	weights := make([]int, k)
	for i := 0; i < k; i++ {
		starts[i] = 1
		ends[i] = i + 2
		weights[i] = (i + 1) * 10
	}

	got, err := MaxWeightedConcurrency(k, starts, ends, weights, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := k*10 + (k-1)*10
	if got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}
