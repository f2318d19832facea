package cmp

// Check two slices have same values in same order.
func SliceEq[T comparable](a []T, b []T) bool {
	return SliceEqWith(a, b, func(x T, y T) bool { return x == y })
}

// Check two slices are equal by pred, in order.
func SliceEqWith[T any, U any](a []T, b []U, pred func(T, U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for nth := range a {
		if !pred(a[nth], b[nth]) {
			return false
		}
	}
	return true
}

// Check a has b as its sub-sequence.
//
// Example
//
//	SliceContains(
//		[]int{1, 2, 3, 4, 5},
//		[]int{3, 4},
//	)  // => true
//
//	SliceContains(
//		[]int{1, 2, 3, 4, 5},
//		[]int{3, 5},
//	) // => false. should be sub-sequence.
//
//	SliceContains(
//		[]int{1, 2, 3, 4, 5},
//		[]int{4, 3},
//	) // => false. ordering matters
//
//	SliceContains(
//		[]int{1, 2, 3, 4, 5},
//		[]int{},
//	) // => true. empty is everywhere, of cource.
//
//	SliceContains(
//		[]int{1, 2, 3, 4, 5},
//		[]int{1, 2, 3, 4, 5},
//	) // => true.
func SliceContains[T comparable](a []T, b []T) bool {
	if len(a) < len(b) {
		return false
	}

	head := a[:len(b)]
	if SliceEq(head, b) {
		return true
	}

	return SliceContains(a[1:], b)
}

// Check A ⊇ B in some equivarency.
//
// In other words, when we can select an equivarent element in A for each elements in B,
// it returns true.
//
// In contrast of SliceContains, this function does not matter ordering.
func SliceSubsetWith[A, B any](a []A, b []B, pred func(A, B) bool) bool {
	if len(b) == 0 {
		return true
	}

	if len(a) < len(b) {
		return false
	}

	rest := make([]*A, len(a))
	for i := range a {
		rest[i] = &a[i]
	}

NEXT_B:
	for _, be := range b {
		for i, ae := range rest {
			if !pred(*ae, be) {
				continue
			}
			// drop i-th element, since it is used.
			rest = append(rest[:i], rest[i+1:]...)
			continue NEXT_B
		}
		return false
	}

	return true
}

// Check two slices have same values, ignoring order.
//
// When a value appears N times in one, it should appear N times in the other.
func SliceContentEq[T comparable](a []T, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	counts := map[T]int{}
	for _, v := range a {
		counts[v] += 1
	}
	for _, v := range b {
		counts[v] -= 1
		if counts[v] < 0 {
			return false
		}
	}
	return true
}

// Check two slices have equivarent values by equiv, ignoring order.
//
// In other words, this function answers equivalence of two bags (or multi-sets).
func SliceContentEqWith[S, T any](a []S, b []T, equiv func(S, T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}

	bm := make(map[int]*T, len(b))
	for i := range b {
		bm[i] = &b[i]
	}

NEXT_A:
	for _, va := range a {
		for k, vb := range bm {
			if equiv(va, *vb) {
				delete(bm, k)
				continue NEXT_A
			}
		}
		return false
	}

	return len(bm) == 0
}
