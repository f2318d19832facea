package cmp

// Check two maps have same key-value pairs.
func MapEq[K comparable, V comparable](a map[K]V, b map[K]V) bool {
	return MapEqWith(a, b, func(x V, y V) bool { return x == y })
}

// Check two maps have same keys, and values under same key are equal by pred.
func MapEqWith[K comparable, V any, W any](a map[K]V, b map[K]W, pred func(V, W) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !pred(va, vb) {
			return false
		}
	}
	return true
}

// check a ⊆ b
func MapLeq[K comparable, V comparable](a map[K]V, b map[K]V) bool {
	for ka, va := range a {
		vb, ok := b[ka]
		if !ok || vb != va {
			return false
		}
	}

	return true
}

// check a ⊆ b, in context of pred
func MapLeqWith[K comparable, V any, W any](a map[K]V, b map[K]W, pred func(V, W) bool) bool {
	for ka, va := range a {
		vb, ok := b[ka]
		if !ok || !pred(va, vb) {
			return false
		}
	}

	return true
}

// check b ⊆ a
func MapGeq[K comparable, V comparable](a map[K]V, b map[K]V) bool {
	for kb, vb := range b {
		va, ok := a[kb]
		if !ok || va != vb {
			return false
		}
	}
	return true
}

// check b ⊆ a, in context of pred
func MapGeqWith[K comparable, V any, W any](a map[K]V, b map[K]W, pred func(V, W) bool) bool {
	for kb, vb := range b {
		va, ok := a[kb]
		if !ok || !pred(va, vb) {
			return false
		}
	}
	return true
}

// Compare map with predicators
//
// args:
//   - a: map to be tested
//   - predicators: map from key to predicator for key.
//
// returns:
//
//	`true` when key set of `a` and `predicators` are equal,
//	and all of `predicators[k](a[k])` are true for each key of `a`.
//	otherwise `false`.
func MapMatch[K comparable, V any](a map[K]V, predicators map[K]func(v V) bool) bool {
	for k, v := range a {
		p, ok := predicators[k]
		if !ok {
			return false
		}
		if !p(v) {
			return false
		}
	}
	for k := range predicators {
		if _, ok := a[k]; !ok {
			return false
		}
	}
	return true
}
