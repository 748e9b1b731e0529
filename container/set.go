package container

// Set is a set of comparable values. The zero value is an empty set that
// can be read but not added to; use make or a composite literal.
type Set[T comparable] map[T]struct{}

func (set Set[T]) Add(v T) {
	set[v] = struct{}{}
}

func (set Set[T]) Delete(v T) {
	delete(set, v)
}

func (set Set[T]) Has(v T) bool {
	_, ok := set[v]
	return ok
}
