// Package interval computes the maximum total weight achievable by a
// bounded-concurrency selection of weighted time intervals.
//
// Tasks are half-open intervals [start, end): a task ending at time t is no
// longer active at t, and a task starting at t is newly active at t. Two
// tasks that merely touch at a boundary are never concurrent.
package interval

import (
	"container/heap"
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidArgument reports a contract violation in the inputs.
// It is returned before any sweep state is built; there are no partial results.
var ErrInvalidArgument = errors.New("invalid argument")

// MaxWeightedConcurrency returns the maximum total weight of tasks running
// simultaneously at any single instant, subject to at most m tasks being
// active in the selection at once.
//
// Tasks are given as parallel slices: task i occupies [starts[i], ends[i])
// and is worth weights[i]. The horizon n is informational only and is not
// required for correctness.
//
// The answer at any instant is the sum of the m largest weights among tasks
// active there, so the sweep keeps the selected weights in a bounded min-heap
// and the remaining active weights on a bench; a task whose slot frees up is
// promoted back. Total cost is O(k log k).
//
// Validation failures (mismatched lengths, empty input, m < 1, a start not
// before its end, a negative weight) return an error wrapping
// ErrInvalidArgument.
func MaxWeightedConcurrency(n int, starts, ends, weights []int, m int) (int, error) {
	_ = n
	k := len(starts)
	if k == 0 {
		return 0, fmt.Errorf("%w: no tasks", ErrInvalidArgument)
	}
	if len(ends) != k || len(weights) != k {
		return 0, fmt.Errorf("%w: mismatched lengths (starts=%d ends=%d weights=%d)",
			ErrInvalidArgument, k, len(ends), len(weights))
	}
	if m < 1 {
		return 0, fmt.Errorf("%w: m must be >= 1, got %d", ErrInvalidArgument, m)
	}
	for i := 0; i < k; i++ {
		if starts[i] >= ends[i] {
			return 0, fmt.Errorf("%w: task %d has start %d >= end %d",
				ErrInvalidArgument, i, starts[i], ends[i])
		}
		if weights[i] < 0 {
			return 0, fmt.Errorf("%w: task %d has negative weight %d",
				ErrInvalidArgument, i, weights[i])
		}
	}

	events := make([]event, 0, 2*k)
	for i := 0; i < k; i++ {
		events = append(events,
			event{time: starts[i], weight: weights[i]},
			event{time: ends[i], weight: weights[i], end: true},
		)
	}
	// Removals sort before additions at equal timestamps. This is what makes
	// adjacent intervals non-concurrent under the half-open convention.
	sort.Slice(events, func(i, j int) bool {
		if events[i].time != events[j].time {
			return events[i].time < events[j].time
		}
		return events[i].end && !events[j].end
	})

	set := newTopSet(m)
	best := 0
	for _, ev := range events {
		if ev.end {
			set.remove(ev.weight)
		} else {
			set.add(ev.weight)
		}
		if set.total > best {
			best = set.total
		}
	}
	return best, nil
}

type event struct {
	time   int
	weight int
	end    bool
}

// topSet tracks the active tasks partitioned into the selected top-m weights
// and a bench of the rest. Only weight multisets matter, so both sides use
// lazy deletion: an ended weight stays in its heap until it surfaces.
type topSet struct {
	limit int
	total int // sum of live selected weights
	size  int // count of live selected weights

	sel       minHeap
	bench     maxHeap
	selLive   map[int]int
	benchLive map[int]int
	selDead   map[int]int
	benchDead map[int]int
}

func newTopSet(limit int) *topSet {
	return &topSet{
		limit:     limit,
		selLive:   map[int]int{},
		benchLive: map[int]int{},
		selDead:   map[int]int{},
		benchDead: map[int]int{},
	}
}

func (s *topSet) add(w int) {
	if s.size < s.limit {
		s.pushSel(w)
		return
	}
	s.cleanSel()
	if low := s.sel[0]; w > low {
		heap.Pop(&s.sel)
		s.selLive[low]--
		s.total -= low
		s.size--
		s.pushBench(low)
		s.pushSel(w)
		return
	}
	s.pushBench(w)
}

func (s *topSet) remove(w int) {
	if s.selLive[w] > 0 {
		s.selLive[w]--
		s.selDead[w]++
		s.total -= w
		s.size--
		s.promote()
		return
	}
	s.benchLive[w]--
	s.benchDead[w]++
}

// promote moves the heaviest benched weight into the freed selection slot.
func (s *topSet) promote() {
	s.cleanBench()
	if len(s.bench) == 0 {
		return
	}
	w := heap.Pop(&s.bench).(int)
	s.benchLive[w]--
	s.pushSel(w)
}

func (s *topSet) pushSel(w int) {
	heap.Push(&s.sel, w)
	s.selLive[w]++
	s.total += w
	s.size++
}

func (s *topSet) pushBench(w int) {
	heap.Push(&s.bench, w)
	s.benchLive[w]++
}

func (s *topSet) cleanSel() {
	for len(s.sel) > 0 && s.selDead[s.sel[0]] > 0 {
		s.selDead[s.sel[0]]--
		heap.Pop(&s.sel)
	}
}

func (s *topSet) cleanBench() {
	for len(s.bench) > 0 && s.benchDead[s.bench[0]] > 0 {
		s.benchDead[s.bench[0]]--
		heap.Pop(&s.bench)
	}
}

type minHeap []int

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(int)) }

func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

type maxHeap []int

func (h maxHeap) Len() int           { return len(h) }
func (h maxHeap) Less(i, j int) bool { return h[i] > h[j] }
func (h maxHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x any)        { *h = append(*h, x.(int)) }

func (h *maxHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
