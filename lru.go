// Copyright (c) 2026 Karasu Dev. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in
// the LICENSE file.

package statcache

// handle addresses a slot in the entry arena. Handles are stable: a slot
// never moves while its entry is live, so a handle stays valid across
// promotions and unrelated insertions or evictions.
type handle int32

// noHandle is the sentinel for "no such slot".
const noHandle handle = -1

// slot is one arena cell: an entry plus its links in the recency order.
// Free slots are chained through next.
type slot struct {
	ent  entry
	prev handle
	next handle
}

// recencyList is the recency-ordered index over the entry arena: an intrusive
// doubly-linked list over slot handles from most- to least-recently-used,
// paired with a filename lookup map. Every live filename has exactly one
// handle in the list and one key in the map. All operations are O(1).
//
// recencyList is not safe for concurrent use; the owning Cache serializes
// access.
type recencyList struct {
	slots []slot
	index map[string]handle
	head  handle // most recently used
	tail  handle // least recently used
	free  handle // head of the free slot chain
}

func newRecencyList() *recencyList {
	return &recencyList{
		index: make(map[string]handle),
		head:  noHandle,
		tail:  noHandle,
		free:  noHandle,
	}
}

// len returns the number of live entries.
func (l *recencyList) len() int { return len(l.index) }

// find returns the handle for name, or noHandle if name is not cached.
func (l *recencyList) find(name string) handle {
	h, ok := l.index[name]
	if !ok {
		return noHandle
	}
	return h
}

// entry returns the entry stored in slot h. The pointer is only valid until
// the slot is removed.
func (l *recencyList) entry(h handle) *entry { return &l.slots[h].ent }

// insertFront creates a fresh entry for name as most recently used and
// returns its handle. name must not already be present.
func (l *recencyList) insertFront(name string) handle {
	h := l.alloc()
	l.slots[h].ent = entry{name: name}
	l.index[name] = h
	l.link(h)
	return h
}

// promote moves h to the most-recently-used end.
func (l *recencyList) promote(h handle) {
	if l.head == h {
		return
	}
	l.unlink(h)
	l.link(h)
}

// evictBack removes the least-recently-used entry and returns its filename.
// It reports false if the list is empty.
func (l *recencyList) evictBack() (string, bool) {
	if l.tail == noHandle {
		return "", false
	}
	name := l.slots[l.tail].ent.name
	l.remove(l.tail)
	return name, true
}

// remove unlinks h from the recency order, drops its lookup key, and recycles
// the slot.
func (l *recencyList) remove(h handle) {
	l.unlink(h)
	delete(l.index, l.slots[h].ent.name)
	l.slots[h].ent = entry{}
	l.slots[h].next = l.free
	l.slots[h].prev = noHandle
	l.free = h
}

// link attaches h at the front. h must be detached.
func (l *recencyList) link(h handle) {
	l.slots[h].prev = noHandle
	l.slots[h].next = l.head
	if l.head != noHandle {
		l.slots[l.head].prev = h
	}
	l.head = h
	if l.tail == noHandle {
		l.tail = h
	}
}

// unlink detaches h from the recency order, leaving the slot allocated.
func (l *recencyList) unlink(h handle) {
	p, n := l.slots[h].prev, l.slots[h].next
	if p != noHandle {
		l.slots[p].next = n
	} else {
		l.head = n
	}
	if n != noHandle {
		l.slots[n].prev = p
	} else {
		l.tail = p
	}
	l.slots[h].prev = noHandle
	l.slots[h].next = noHandle
}

// alloc takes a slot from the free chain, growing the arena when it is empty.
func (l *recencyList) alloc() handle {
	if l.free != noHandle {
		h := l.free
		l.free = l.slots[h].next
		l.slots[h].next = noHandle
		return h
	}
	l.slots = append(l.slots, slot{prev: noHandle, next: noHandle})
	return handle(len(l.slots) - 1)
}
