// Package fib generates bounded Fibonacci sequences.
package fib

import (
	"strconv"
	"strings"
)

const (
	// Cap is the largest value a generated sequence may hold.
	Cap int64 = 100_000_000_000_000

	MinTerms = 1
	MaxTerms = 50
)

// Generate returns the first n Fibonacci numbers starting at 0. The
// sequence stops early when the next term would exceed Cap, so its length
// may be less than n.
func Generate(n int) []int64 {
	if n <= 0 {
		return []int64{}
	}
	if n == 1 {
		return []int64{0}
	}
	// F(69) is the first term above Cap.
	seq := make([]int64, 2, min(n, 69))
	seq[0], seq[1] = 0, 1
	for len(seq) < n {
		next := seq[len(seq)-1] + seq[len(seq)-2]
		if next > Cap {
			break
		}
		seq = append(seq, next)
	}
	return seq
}

// Truncated reports whether Generate(n) came back shorter than n.
func Truncated(n int, seq []int64) bool {
	return n > 0 && len(seq) < n
}

func ValidTerms(n int) bool {
	return n >= MinTerms && n <= MaxTerms
}

// ParseTerms parses a user-entered term count.
func ParseTerms(s string) (int, error) {
	raw := strings.TrimSpace(s)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &TermsError{Input: s, Wrapped: ErrNotNumeric}
	}
	if !ValidTerms(n) {
		return 0, &TermsError{Input: s, Wrapped: ErrOutOfRange}
	}
	return n, nil
}

// Verify checks that seq starts 0, 1, that every later value is the sum
// of the two before it, and that nothing exceeds Cap.
func Verify(seq []int64) error {
	for i, v := range seq {
		if v > Cap {
			return &SequenceError{Index: i, Value: v, Wrapped: ErrOverCap}
		}
		var want int64
		switch i {
		case 0:
			want = 0
		case 1:
			want = 1
		default:
			want = seq[i-1] + seq[i-2]
		}
		if v != want {
			return &SequenceError{Index: i, Value: v, Wrapped: ErrRecurrence}
		}
	}
	return nil
}
