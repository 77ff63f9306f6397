package solution

import "testing"

func TestFirstRecurring(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in     string
		want   rune
		wantOK bool
	}{
		{"acbbac", 'b', true},
		{"abcdef", 0, false},
		{"", 0, false},
		{"aa", 'a', true},
		{"abba", 'b', true},
	}
	for _, tc := range tests {
		got, ok := FirstRecurring(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("FirstRecurring(%q) = (%q, %v), want (%q, %v)",
				tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}
