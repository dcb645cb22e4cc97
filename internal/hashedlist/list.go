// Package hashedlist provides an ordered list whose entries may carry a
// key, with constant-time lookup by key and a cursor that can insert and
// delete while it walks.
package hashedlist

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	// ErrIllegalState is returned when a cursor operation is not allowed
	// from the cursor's current position.
	ErrIllegalState = errors.New("illegal cursor state")

	// ErrKeyExists is returned when a key is already present.
	ErrKeyExists = errors.New("key already exists")

	// ErrKeyNotFound is returned when a key is absent.
	ErrKeyNotFound = errors.New("key not found")
)

const nilSlot = -1

// entry is one arena slot. gen changes every time the slot is freed so
// cursors can tell a reused slot from the entry they were sitting on.
type entry[K comparable, V any] struct {
	key   K
	value V
	keyed bool
	live  bool
	gen   uint32
	prev  int
	next  int
}

// List is an ordered sequence of values, each optionally keyed. Adding a
// value under a key that is already present replaces the earlier entry.
// Entries live in a slot arena linked in list order, and a key index maps
// keys to slots. Not safe for concurrent use. Create one with New.
type List[K comparable, V any] struct {
	slots []entry[K, V]
	free  []int
	head  int
	tail  int
	index map[K]int
	n     int
}

// New returns an empty list.
func New[K comparable, V any]() *List[K, V] {
	return &List[K, V]{head: nilSlot, tail: nilSlot, index: make(map[K]int)}
}

// Len returns the number of entries.
func (l *List[K, V]) Len() int { return l.n }

func (l *List[K, V]) alloc(key K, keyed bool, value V) int {
	var s int
	if n := len(l.free); n > 0 {
		s = l.free[n-1]
		l.free = l.free[:n-1]
	} else {
		s = len(l.slots)
		l.slots = append(l.slots, entry[K, V]{})
	}
	e := &l.slots[s]
	e.key = key
	e.value = value
	e.keyed = keyed
	e.live = true
	e.prev = nilSlot
	e.next = nilSlot
	return s
}

// linkBefore links slot s in front of at, or at the tail when at is nilSlot,
// and indexes its key.
func (l *List[K, V]) linkBefore(s, at int) {
	e := &l.slots[s]
	if at == nilSlot {
		e.prev = l.tail
		if l.tail != nilSlot {
			l.slots[l.tail].next = s
		} else {
			l.head = s
		}
		l.tail = s
	} else {
		e.prev = l.slots[at].prev
		e.next = at
		if e.prev != nilSlot {
			l.slots[e.prev].next = s
		} else {
			l.head = s
		}
		l.slots[at].prev = s
	}
	if e.keyed {
		l.index[e.key] = s
	}
	l.n++
}

// unlink removes slot s from both the sequence and the key index and
// returns it to the free list.
func (l *List[K, V]) unlink(s int) V {
	e := &l.slots[s]
	if e.prev != nilSlot {
		l.slots[e.prev].next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nilSlot {
		l.slots[e.next].prev = e.prev
	} else {
		l.tail = e.prev
	}
	if e.keyed {
		delete(l.index, e.key)
	}

	value := e.value
	var (
		zk K
		zv V
	)
	e.key, e.value = zk, zv
	e.keyed = false
	e.live = false
	e.gen++
	e.prev, e.next = nilSlot, nilSlot
	l.free = append(l.free, s)
	l.n--
	return value
}

// slotAt walks to the n-th entry from whichever end is closer.
func (l *List[K, V]) slotAt(n int) int {
	if n < 0 || n >= l.n {
		return nilSlot
	}
	if n < l.n/2 {
		s := l.head
		for ; n > 0; n-- {
			s = l.slots[s].next
		}
		return s
	}
	s := l.tail
	for i := l.n - 1; i > n; i-- {
		s = l.slots[s].prev
	}
	return s
}

// Add appends an unkeyed value.
func (l *List[K, V]) Add(value V) {
	var zk K
	l.linkBefore(l.alloc(zk, false, value), nilSlot)
}

// AddKeyed appends value under key, removing any earlier entry for key.
func (l *List[K, V]) AddKeyed(key K, value V) {
	l.RemoveKey(key)
	l.linkBefore(l.alloc(key, true, value), nilSlot)
}

// Insert places value under key so that it ends up at position at. Any
// earlier entry for key is removed first. It panics if at is outside
// [0, Len()].
func (l *List[K, V]) Insert(at int, key K, value V) {
	if at < 0 || at > l.n {
		panic(fmt.Sprintf("hashedlist: insert index %d out of range [0:%d]", at, l.n))
	}
	l.RemoveKey(key)
	at = min(at, l.n)
	l.linkBefore(l.alloc(key, true, value), l.slotAt(at))
}

// InsertValue places an unkeyed value at position at. It panics if at is
// outside [0, Len()].
func (l *List[K, V]) InsertValue(at int, value V) {
	if at < 0 || at > l.n {
		panic(fmt.Sprintf("hashedlist: insert index %d out of range [0:%d]", at, l.n))
	}
	var zk K
	l.linkBefore(l.alloc(zk, false, value), l.slotAt(at))
}

// Get returns the value stored under key.
func (l *List[K, V]) Get(key K) (V, bool) {
	s, ok := l.index[key]
	if !ok {
		var zv V
		return zv, false
	}
	return l.slots[s].value, true
}

// At returns the n-th value.
func (l *List[K, V]) At(n int) (V, bool) {
	s := l.slotAt(n)
	if s == nilSlot {
		var zv V
		return zv, false
	}
	return l.slots[s].value, true
}

// Contains reports whether key is present.
func (l *List[K, V]) Contains(key K) bool {
	_, ok := l.index[key]
	return ok
}

// Index returns the position of the entry for key, or -1.
func (l *List[K, V]) Index(key K) int {
	target, ok := l.index[key]
	if !ok {
		return -1
	}
	i := 0
	for s := l.head; s != target; s = l.slots[s].next {
		i++
	}
	return i
}

// RemoveKey deletes the entry for key and reports whether there was one.
func (l *List[K, V]) RemoveKey(key K) bool {
	s, ok := l.index[key]
	if !ok {
		return false
	}
	l.unlink(s)
	return true
}

// RemoveAt deletes the n-th entry and returns its value.
func (l *List[K, V]) RemoveAt(n int) (V, bool) {
	s := l.slotAt(n)
	if s == nilSlot {
		var zv V
		return zv, false
	}
	return l.unlink(s), true
}

// ReplaceKey moves the entry for oldKey to newKey, keeping its position.
func (l *List[K, V]) ReplaceKey(oldKey, newKey K) error {
	s, ok := l.index[oldKey]
	if !ok {
		return fmt.Errorf("replace %v: %w", oldKey, ErrKeyNotFound)
	}
	if oldKey == newKey {
		return nil
	}
	if _, exists := l.index[newKey]; exists {
		return fmt.Errorf("replace %v with %v: %w", oldKey, newKey, ErrKeyExists)
	}
	delete(l.index, oldKey)
	l.slots[s].key = newKey
	l.index[newKey] = s
	return nil
}

// Clear removes every entry.
func (l *List[K, V]) Clear() {
	for l.head != nilSlot {
		l.unlink(l.head)
	}
}

// Keys returns the keys of the keyed entries in list order.
func (l *List[K, V]) Keys() []K {
	keys := make([]K, 0, len(l.index))
	for s := l.head; s != nilSlot; s = l.slots[s].next {
		if l.slots[s].keyed {
			keys = append(keys, l.slots[s].key)
		}
	}
	return keys
}

// Values returns every value in list order.
func (l *List[K, V]) Values() []V {
	values := make([]V, 0, l.n)
	for s := l.head; s != nilSlot; s = l.slots[s].next {
		values = append(values, l.slots[s].value)
	}
	return values
}

// All yields every entry in list order. The loop body may remove the
// entry it is visiting; other mutations end the iteration early.
func (l *List[K, V]) All() iter.Seq2[Entry[K], V] {
	return func(yield func(Entry[K], V) bool) {
		for s := l.head; s != nilSlot && l.slots[s].live; {
			e := l.slots[s]
			next := e.next
			if !yield(Entry[K]{Key: e.key, Keyed: e.keyed}, e.value) {
				return
			}
			s = next
		}
	}
}

// Entry identifies a list entry's key.
type Entry[K comparable] struct {
	Key   K
	Keyed bool
}

// Sort reorders the entries stably by cmp. Cursors stay on the entries
// they were on.
func (l *List[K, V]) Sort(cmp func(a, b V) int) {
	order := make([]int, 0, l.n)
	for s := l.head; s != nilSlot; s = l.slots[s].next {
		order = append(order, s)
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp(l.slots[a].value, l.slots[b].value)
	})

	l.head, l.tail = nilSlot, nilSlot
	prev := nilSlot
	for _, s := range order {
		l.slots[s].prev = prev
		l.slots[s].next = nilSlot
		if prev == nilSlot {
			l.head = s
		} else {
			l.slots[prev].next = s
		}
		prev = s
	}
	l.tail = prev
}
