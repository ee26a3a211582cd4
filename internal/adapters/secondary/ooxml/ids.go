package ooxml

import "strconv"

// Allocator issues monotonically increasing ids within one scope
type Allocator struct {
	next int64
}

// NewAllocator returns an allocator whose first id is start
func NewAllocator(start int64) *Allocator {
	return &Allocator{next: start}
}

// Next returns the next id of the scope
func (a *Allocator) Next() int64 {
	id := a.next
	a.next++
	return id
}

// Peek returns the id the next call to Next will issue
func (a *Allocator) Peek() int64 {
	return a.next
}

// RelIDs issues relationship ids (rId1, rId2, ...) for one source part
type RelIDs struct {
	alloc Allocator
}

// NewRelIDs returns a relationship id allocator starting at rId<start>
func NewRelIDs(start int64) *RelIDs {
	return &RelIDs{alloc: Allocator{next: start}}
}

// Next returns the next relationship id
func (r *RelIDs) Next() string {
	return "rId" + strconv.FormatInt(r.alloc.Next(), 10)
}
