package store

import (
	"errors"
	"sync/atomic"
)

// ErrUnissuedID is returned for a caller-supplied id the allocator has not
// handed out yet. Accepting it would collide with a later Next.
var ErrUnissuedID = errors.New("id not issued by allocator")

// IDAllocator hands out identifiers shared by every entity kind. The first
// value is 1 and every later value is strictly greater than the previous one.
type IDAllocator struct {
	last atomic.Int64
}

// Next returns a fresh identifier.
func (a *IDAllocator) Next() int64 {
	return a.last.Add(1)
}

// Last returns the most recently issued identifier, or 0 when none was issued.
func (a *IDAllocator) Last() int64 {
	return a.last.Load()
}

// Issued reports whether id was already handed out by Next.
func (a *IDAllocator) Issued(id int64) bool {
	return id > 0 && id <= a.last.Load()
}
