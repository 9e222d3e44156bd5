package docstore

// Collection provides sequence-level operations over one named
// collection inside a loaded document. It knows nothing about
// soft-delete semantics or cross-collection references; those live in
// the invariant operations.
type Collection[T any] struct {
	items *[]T
}

func NewCollection[T any](items *[]T) Collection[T] {
	return Collection[T]{items: items}
}

// Find returns the first record matching pred.
func (c Collection[T]) Find(pred func(T) bool) (T, bool) {
	for _, r := range *c.items {
		if pred(r) {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns all records matching pred, in collection order.
func (c Collection[T]) Filter(pred func(T) bool) []T {
	var out []T
	for _, r := range *c.items {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Insert appends rec. The caller supplies the id.
func (c Collection[T]) Insert(rec T) T {
	*c.items = append(*c.items, rec)
	return rec
}

// Replace overwrites the first record matching pred with rec.
func (c Collection[T]) Replace(pred func(T) bool, rec T) bool {
	for i, r := range *c.items {
		if pred(r) {
			(*c.items)[i] = rec
			return true
		}
	}
	return false
}

// Remove deletes every record matching pred and reports how many were
// removed.
func (c Collection[T]) Remove(pred func(T) bool) int {
	kept := (*c.items)[:0]
	removed := 0
	for _, r := range *c.items {
		if pred(r) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	*c.items = kept
	return removed
}
