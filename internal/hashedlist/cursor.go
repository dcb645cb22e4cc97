package hashedlist

type move uint8

const (
	moveNone move = iota
	moveForward
	moveBackward
)

// Cursor walks a List in both directions. It sits between two entries:
// Next returns the one after the gap and Prev the one before it.
//
// A cursor survives mutations made elsewhere unless the entry it would
// return next is removed; after that Next and Prev report false and Err
// returns ErrIllegalState until SetKey repositions it.
type Cursor[K comparable, V any] struct {
	l *List[K, V]

	next    int
	nextGen uint32
	last    int
	lastGen uint32
	moved   move
	err     error
}

// Cursor returns a cursor positioned before the first entry.
func (l *List[K, V]) Cursor() *Cursor[K, V] {
	c := &Cursor[K, V]{l: l, last: nilSlot}
	c.setNext(l.head)
	return c
}

// CursorAt returns a cursor whose Next yields the n-th entry. An n at or
// past the end positions it after the last entry.
func (l *List[K, V]) CursorAt(n int) *Cursor[K, V] {
	c := &Cursor[K, V]{l: l, last: nilSlot}
	c.setNext(l.slotAt(max(n, 0)))
	return c
}

// CursorAtKey returns a cursor whose Next yields the entry for key, or a
// cursor at the end of the list if key is absent.
func (l *List[K, V]) CursorAtKey(key K) *Cursor[K, V] {
	c := &Cursor[K, V]{l: l, last: nilSlot}
	c.SetKey(key)
	return c
}

func (c *Cursor[K, V]) setNext(s int) {
	c.next = s
	if s != nilSlot {
		c.nextGen = c.l.slots[s].gen
	}
}

func (c *Cursor[K, V]) valid(s int, gen uint32) bool {
	return s == nilSlot || (c.l.slots[s].live && c.l.slots[s].gen == gen)
}

// check records ErrIllegalState if the upcoming entry has been removed.
func (c *Cursor[K, V]) check() bool {
	if c.err == nil && !c.valid(c.next, c.nextGen) {
		c.err = ErrIllegalState
	}
	return c.err == nil
}

// Err returns the error that stopped the cursor, if any.
func (c *Cursor[K, V]) Err() error { return c.err }

// HasNext reports whether Next would return an entry.
func (c *Cursor[K, V]) HasNext() bool {
	return c.check() && c.next != nilSlot
}

// HasPrev reports whether Prev would return an entry.
func (c *Cursor[K, V]) HasPrev() bool {
	return c.check() && c.before() != nilSlot
}

func (c *Cursor[K, V]) before() int {
	if c.next == nilSlot {
		return c.l.tail
	}
	return c.l.slots[c.next].prev
}

// Next advances past the following entry and returns its value.
func (c *Cursor[K, V]) Next() (V, bool) {
	var zv V
	if !c.check() || c.next == nilSlot {
		return zv, false
	}
	s := c.next
	c.last, c.lastGen = s, c.l.slots[s].gen
	c.moved = moveForward
	c.setNext(c.l.slots[s].next)
	return c.l.slots[s].value, true
}

// Prev steps back over the preceding entry and returns its value.
func (c *Cursor[K, V]) Prev() (V, bool) {
	var zv V
	if !c.check() {
		return zv, false
	}
	s := c.before()
	if s == nilSlot {
		return zv, false
	}
	c.last, c.lastGen = s, c.l.slots[s].gen
	c.moved = moveBackward
	c.setNext(s)
	return c.l.slots[s].value, true
}

// Key returns the key of the entry last returned by Next or Prev, and
// whether that entry is keyed.
func (c *Cursor[K, V]) Key() (K, bool) {
	var zk K
	if c.moved == moveNone || !c.valid(c.last, c.lastGen) {
		return zk, false
	}
	e := c.l.slots[c.last]
	return e.key, e.keyed
}

// Remove deletes the entry last returned by Next. It fails with
// ErrIllegalState if the last move was Prev, if there has been no move
// since the cursor was positioned or modified the list, or if that entry
// was already removed elsewhere.
func (c *Cursor[K, V]) Remove() error {
	if c.moved != moveForward || !c.valid(c.last, c.lastGen) {
		return ErrIllegalState
	}
	c.l.unlink(c.last)
	c.last = nilSlot
	c.moved = moveNone
	return nil
}

// Add inserts an unkeyed value in front of the entry Next would return.
// That entry is still the one Next returns afterwards.
func (c *Cursor[K, V]) Add(value V) error {
	if !c.check() {
		return c.err
	}
	var zk K
	c.l.linkBefore(c.l.alloc(zk, false, value), c.next)
	c.moved = moveNone
	return nil
}

// AddKeyed inserts value under key in front of the entry Next would
// return, removing any earlier entry for key. If the removed entry was
// the one Next would return, the cursor moves on to its successor.
func (c *Cursor[K, V]) AddKeyed(key K, value V) error {
	if !c.check() {
		return c.err
	}
	if s, ok := c.l.index[key]; ok {
		if s == c.next {
			c.setNext(c.l.slots[s].next)
		}
		c.l.unlink(s)
	}
	c.l.linkBefore(c.l.alloc(key, true, value), c.next)
	c.moved = moveNone
	return nil
}

// SetKey positions the cursor so that Next returns the entry for key, or
// at the end of the list if key is absent. It clears any error.
func (c *Cursor[K, V]) SetKey(key K) {
	s, ok := c.l.index[key]
	if !ok {
		s = nilSlot
	}
	c.setNext(s)
	c.last = nilSlot
	c.moved = moveNone
	c.err = nil
}
