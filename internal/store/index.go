package store

import "slices"

// Index is a secondary index mapping a key to an ordered list of ids.
// Lists are replaced, never mutated in place, so slices handed out earlier
// keep their contents.
type Index[K comparable] struct {
	entries map[K][]int64
}

// NewIndex constructs an empty index.
func NewIndex[K comparable]() *Index[K] {
	return &Index[K]{entries: make(map[K][]int64)}
}

// Add appends id to the list under key.
func (x *Index[K]) Add(key K, id int64) {
	current := x.entries[key]
	next := make([]int64, 0, len(current)+1)
	next = append(next, current...)
	x.entries[key] = append(next, id)
}

// Remove drops id from the list under key.
func (x *Index[K]) Remove(key K, id int64) {
	current := x.entries[key]
	pos := slices.Index(current, id)
	if pos < 0 {
		return
	}
	next := slices.Delete(slices.Clone(current), pos, pos+1)
	if len(next) == 0 {
		delete(x.entries, key)
		return
	}
	x.entries[key] = next
}

// MoveToEnd relocates id to the end of the list under key, adding it if absent.
func (x *Index[K]) MoveToEnd(key K, id int64) {
	x.Remove(key, id)
	x.Add(key, id)
}

// Lookup returns the ids stored under key in insertion order.
func (x *Index[K]) Lookup(key K) []int64 {
	return x.entries[key]
}

// Contains reports whether id is listed under key.
func (x *Index[K]) Contains(key K, id int64) bool {
	return slices.Contains(x.entries[key], id)
}

// Len returns the number of ids listed under key.
func (x *Index[K]) Len(key K) int {
	return len(x.entries[key])
}
