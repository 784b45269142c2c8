// Package suffixsort implements the in-memory suffix-sorting primitive
// that the Suffix-Sort Driver (package build) treats as a replaceable
// black box: given a byte string, return a permutation of 0..len(text)
// (inclusive of the virtual empty suffix past the last byte) ordered by
// suffix. SA-IS, DC3 and divsufsort all satisfy this same contract; this
// package uses prefix-doubling rank sort instead, because its correctness
// is easy to check by inspection and this module's build can't be
// verified by running it. Swapping in a linear-time algorithm later
// changes nothing above this package.
package suffixsort

import "sort"

// Build returns a permutation of 0..len(text) (n+1 values, including the
// empty suffix one past the end of text) ordered by suffix. Callers that
// want only real, UTF-8-boundary-aligned offsets filter the result
// themselves (see build.emitBoundarySorted) — this package knows nothing
// about UTF-8.
func Build(text []byte) []int32 {
	n := len(text)
	sa := make([]int32, n+1)
	rank := make([]int, n+1)
	tmp := make([]int, n+1)

	for i := 0; i <= n; i++ {
		sa[i] = int32(i)
	}
	// Byte ranks start at 1 so the virtual empty suffix (rank 0) always
	// sorts first, even when text itself contains a zero byte.
	for i := 0; i < n; i++ {
		rank[i] = int(text[i]) + 1
	}
	rank[n] = 0

	for k := 1; ; k *= 2 {
		less := func(a, b int32) bool {
			if rank[a] != rank[b] {
				return rank[a] < rank[b]
			}
			ra, rb := -1, -1
			if int(a)+k <= n {
				ra = rank[a+int32(k)]
			}
			if int(b)+k <= n {
				rb = rank[b+int32(k)]
			}
			return ra < rb
		}

		sort.Slice(sa, func(i, j int) bool { return less(sa[i], sa[j]) })

		tmp[sa[0]] = 0
		for i := 1; i <= n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			if less(sa[i-1], sa[i]) {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)

		if rank[sa[n]] == n {
			return sa
		}
	}
}
