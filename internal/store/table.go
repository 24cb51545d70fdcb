package store

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrDuplicateKey is returned when inserting an id that already exists.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnknownKey is returned when replacing an id that does not exist.
	ErrUnknownKey = errors.New("unknown key")
	// ErrMissingParent signals a fixture referencing an entity that was never created.
	ErrMissingParent = errors.New("missing parent entity")
)

// Cloner is implemented by every stored entity. Clone must return a value
// that shares no slices, maps or pointers with the receiver.
type Cloner[T any] interface {
	Clone() T
}

// Table is a keyed collection of snapshots of one entity kind. Values are
// cloned on the way in and on the way out, so callers never alias a row.
type Table[T Cloner[T]] struct {
	kind string
	rows map[int64]T
}

// NewTable constructs an empty table. kind is used in error messages.
func NewTable[T Cloner[T]](kind string) *Table[T] {
	return &Table[T]{kind: kind, rows: make(map[int64]T)}
}

// Kind returns the entity kind stored in the table.
func (t *Table[T]) Kind() string {
	return t.kind
}

// Insert stores a new snapshot under id.
func (t *Table[T]) Insert(id int64, value T) error {
	if _, ok := t.rows[id]; ok {
		return fmt.Errorf("%s %d: %w", t.kind, id, ErrDuplicateKey)
	}
	t.rows[id] = value.Clone()
	return nil
}

// Put stores the snapshot regardless of whether the id already exists.
func (t *Table[T]) Put(id int64, value T) {
	t.rows[id] = value.Clone()
}

// Replace swaps the snapshot stored under an existing id.
func (t *Table[T]) Replace(id int64, value T) error {
	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%s %d: %w", t.kind, id, ErrUnknownKey)
	}
	t.rows[id] = value.Clone()
	return nil
}

// Get returns the snapshot stored under id.
func (t *Table[T]) Get(id int64) (T, bool) {
	value, ok := t.rows[id]
	if !ok {
		return value, false
	}
	return value.Clone(), true
}

// MustGet returns the snapshot stored under id and panics with an error
// wrapping ErrMissingParent when it is absent.
func (t *Table[T]) MustGet(id int64) T {
	value, ok := t.rows[id]
	if !ok {
		panic(fmt.Errorf("%w: %s %d", ErrMissingParent, t.kind, id))
	}
	return value.Clone()
}

// Has reports whether id is present.
func (t *Table[T]) Has(id int64) bool {
	_, ok := t.rows[id]
	return ok
}

// Delete removes id. Deleting an absent id is a no-op.
func (t *Table[T]) Delete(id int64) {
	delete(t.rows, id)
}

// Len returns the number of stored snapshots.
func (t *Table[T]) Len() int {
	return len(t.rows)
}

// IDs returns every key in ascending order.
func (t *Table[T]) IDs() []int64 {
	return slices.Sorted(maps.Keys(t.rows))
}

// All returns every snapshot ordered by ascending id.
func (t *Table[T]) All() []T {
	ids := t.IDs()
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id].Clone())
	}
	return out
}

// Filter returns the snapshots matching keep, ordered by ascending id.
func (t *Table[T]) Filter(keep func(T) bool) []T {
	out := make([]T, 0)
	for _, value := range t.All() {
		if keep(value) {
			out = append(out, value)
		}
	}
	return out
}

// MustSucceed panics when err is not nil. Builders use it for writes whose
// failure means the fixture itself is inconsistent.
func MustSucceed(label string, err error) {
	if err != nil {
		panic(fmt.Errorf("store %s: %w", label, err))
	}
}
