package selection

// Combinations returns every k-element index subset of [0, n) in lexicographic order.
// Each subset is sorted ascending. k <= 0 or k > n yields nil.
func Combinations(n, k int) [][]int {
	if k <= 0 || k > n {
		return nil
	}

	var out [][]int
	ForEachCombination(n, k, func(idx []int) bool {
		out = append(out, append([]int(nil), idx...))
		return true
	})
	return out
}

// ForEachCombination calls fn with every k-element index subset of [0, n) in
// lexicographic order. The slice passed to fn is reused between calls; copy it
// to retain it. Iteration stops early when fn returns false.
func ForEachCombination(n, k int, fn func(idx []int) bool) {
	if k <= 0 || k > n {
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		if !fn(idx) {
			return
		}

		// Find the rightmost position that can still advance
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Binomial returns C(n, k), saturating at the max int on overflow
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	const maxInt = int(^uint(0) >> 1)
	result := 1
	for i := 1; i <= k; i++ {
		next := result * (n - k + i)
		if next/(n-k+i) != result {
			return maxInt
		}
		result = next / i
	}
	return result
}
