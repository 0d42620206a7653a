// Package navigator provides the ordered-list cursor shared by every entity
// browser. It holds a filtered snapshot of one collection and a clamped
// position; the current record is additionally tracked by its full identity
// so selection can survive a reload that reorders the list.
package navigator

// Loader re-runs the underlying query with a substring filter. An empty
// filter means the unfiltered list.
type Loader[T any] func(filter string) ([]T, error)

type Navigator[T any, K comparable] struct {
	load  Loader[T]
	keyOf func(T) K

	items    []T
	position int
}

// New builds a navigator over an empty snapshot; call Reload to populate it.
func New[T any, K comparable](load Loader[T], keyOf func(T) K) *Navigator[T, K] {
	return &Navigator[T, K]{
		load:  load,
		keyOf: keyOf,
	}
}

// Reload re-runs the query and resets the position to the first record.
// The old snapshot is kept if the query fails. Any mutation through the
// store must be followed by a Reload; the snapshot is never patched in
// place because ordering and filtering may move the edited record.
func (n *Navigator[T, K]) Reload(filter string) error {
	items, err := n.load(filter)
	if err != nil {
		return err
	}
	n.items = items
	n.position = 0
	return nil
}

func (n *Navigator[T, K]) Len() int {
	return len(n.items)
}

func (n *Navigator[T, K]) Position() int {
	return n.position
}

// Current returns the record under the cursor, or false on an empty snapshot.
func (n *Navigator[T, K]) Current() (T, bool) {
	if len(n.items) == 0 {
		var zero T
		return zero, false
	}
	return n.items[n.position], true
}

// CurrentKey returns the identity of the current record.
func (n *Navigator[T, K]) CurrentKey() (K, bool) {
	record, ok := n.Current()
	if !ok {
		var zero K
		return zero, false
	}
	return n.keyOf(record), true
}

// First moves to position 0; no-op on an empty snapshot.
func (n *Navigator[T, K]) First() {
	if len(n.items) > 0 {
		n.position = 0
	}
}

// Last moves to the final position; no-op on an empty snapshot.
func (n *Navigator[T, K]) Last() {
	if len(n.items) > 0 {
		n.position = len(n.items) - 1
	}
}

// Next moves forward by one; no-op at the end, never wraps.
func (n *Navigator[T, K]) Next() {
	if len(n.items) > 0 && n.position < len(n.items)-1 {
		n.position++
	}
}

// Prev moves back by one; no-op at the start, never wraps.
func (n *Navigator[T, K]) Prev() {
	if len(n.items) > 0 && n.position > 0 {
		n.position--
	}
}

// Seek positions the cursor on the record with the given identity. A linear
// scan is deliberate: snapshots are small and positions are not stable
// across reloads. Returns false and leaves the position alone when the key
// is absent.
func (n *Navigator[T, K]) Seek(key K) bool {
	for i, record := range n.items {
		if n.keyOf(record) == key {
			n.position = i
			return true
		}
	}
	return false
}
