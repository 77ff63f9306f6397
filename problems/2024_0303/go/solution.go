package solution

import "dcptrack/pkg/interval"

// BestDayEarnings returns the highest sum obtainable on any single day
// by keeping the m best-paying offers active that day. Offers cover
// half-open day ranges [start, end).
func BestDayEarnings(n int, starts, ends, amounts []int, m int) (int, error) {
	return interval.MaxWeightedConcurrency(n, starts, ends, amounts, m)
}
