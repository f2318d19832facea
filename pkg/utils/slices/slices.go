package slices

// map each element in sli.
//
// args:
//   - sli : slice of `T`s
//   - mapper : mapping function from T to R
//
// return:
//
//	slice of `R`s.
//	each element indexed `N` is given with `mapper(sli[N])` .
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		ret[nth] = mapper(v)
	}
	return ret
}

// Map over sli with mapper.
//
// If mapper causes error, return (nil, error).
//
// Otherwise, return (mapping result, nil).
func MapUntilError[T any, R any](sli []T, mapper func(v T) (R, error)) ([]R, error) {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		r, err := mapper(v)
		if err != nil {
			return nil, err
		}
		ret[nth] = r
	}
	return ret, nil
}

// find the first element satisfying predicator.
//
// args:
//   - sli: slice to be searched
//   - predicator: criteria
//
// return:
//   - T: the first element satisfying predicator (or zero-value of T)
//   - bool: true when such element is found
func First[T any](sli []T, predicator func(v T) bool) (T, bool) {
	for _, v := range sli {
		if predicator(v) {
			return v, true
		}
	}
	return *new(T), false
}

// convert slice to map.
//
// If keys given with getkey collides, a value coming latter takes over previous.
func ToMap[T any, K comparable](sli []T, getkey func(v T) K) map[K]T {
	m := map[K]T{}
	for _, v := range sli {
		m[getkey(v)] = v
	}
	return m
}

// remove duplicated values, keeping the order of first occurrences.
func Uniq[T comparable](sli []T) []T {
	seen := map[T]struct{}{}
	ret := make([]T, 0, len(sli))
	for _, v := range sli {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		ret = append(ret, v)
	}
	return ret
}

// take elements satisfying predicator, keeping order.
func Filter[T any](sli []T, predicator func(v T) bool) []T {
	ret := make([]T, 0, len(sli))
	for _, v := range sli {
		if predicator(v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// true when at least one element satisfies predicator.
func Any[T any](sli []T, predicator func(v T) bool) bool {
	_, ok := First(sli, predicator)
	return ok
}
