package hashedlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(c *Cursor[string, int]) []int {
	var out []int
	for {
		v, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestCursorTraversal(t *testing.T) {
	l := sample()
	c := l.Cursor()

	assert.False(t, c.HasPrev())
	assert.Equal(t, []int{1, 2, 3, 4}, drain(c))
	assert.False(t, c.HasNext())

	v, ok := c.Prev()
	require.True(t, ok)
	assert.Equal(t, 4, v)
	k, keyed := c.Key()
	assert.True(t, keyed)
	assert.Equal(t, "d", k)

	v, _ = c.Prev()
	assert.Equal(t, 3, v)
	_, keyed = c.Key()
	assert.False(t, keyed)

	// Prev then Next returns the same entry.
	v, _ = c.Next()
	assert.Equal(t, 3, v)
	assert.NoError(t, c.Err())
}

func TestCursorRemove(t *testing.T) {
	l := sample()
	c := l.Cursor()

	assert.ErrorIs(t, c.Remove(), ErrIllegalState)

	c.Next()
	v, _ := c.Next()
	require.Equal(t, 2, v)
	require.NoError(t, c.Remove())
	assert.Equal(t, []int{1, 3, 4}, l.Values())
	assert.False(t, l.Contains("b"))

	// A second remove without a move is illegal.
	assert.ErrorIs(t, c.Remove(), ErrIllegalState)

	v, _ = c.Next()
	assert.Equal(t, 3, v)

	c.Prev()
	assert.ErrorIs(t, c.Remove(), ErrIllegalState)
	assert.Equal(t, []int{1, 3, 4}, l.Values())
}

func TestCursorAdd(t *testing.T) {
	l := sample()
	c := l.CursorAt(2)

	require.NoError(t, c.Add(10))
	require.NoError(t, c.AddKeyed("x", 11))
	assert.Equal(t, []int{1, 2, 10, 11, 3, 4}, l.Values())

	// The entry that Next would have returned is unchanged.
	v, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, 3, v)

	// Remove is illegal right after an insertion.
	c2 := l.Cursor()
	c2.Next()
	require.NoError(t, c2.Add(0))
	assert.ErrorIs(t, c2.Remove(), ErrIllegalState)
}

func TestCursorAddKeyedReplaces(t *testing.T) {
	l := sample()
	c := l.CursorAtKey("b")

	// Replacing the entry Next would return moves the cursor past it.
	require.NoError(t, c.AddKeyed("b", 20))
	assert.Equal(t, []int{1, 20, 3, 4}, l.Values())
	v, _ := c.Next()
	assert.Equal(t, 3, v)

	require.NoError(t, c.AddKeyed("a", 30))
	assert.Equal(t, []int{20, 3, 30, 4}, l.Values())
	assert.Equal(t, []string{"b", "a", "d"}, l.Keys())
}

func TestCursorSetKey(t *testing.T) {
	l := sample()
	c := l.Cursor()

	c.SetKey("d")
	v, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, 4, v)

	c.SetKey("missing")
	assert.False(t, c.HasNext())
	v, ok = c.Prev()
	require.True(t, ok)
	assert.Equal(t, 4, v)

	c.SetKey("a")
	assert.ErrorIs(t, c.Remove(), ErrIllegalState)
}

func TestCursorInvalidatedElsewhere(t *testing.T) {
	l := sample()
	a := l.CursorAtKey("b")
	b := l.CursorAtKey("d")

	l.RemoveKey("b")
	l.Add(99)

	_, ok := a.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, a.Err(), ErrIllegalState)
	assert.ErrorIs(t, a.Add(5), ErrIllegalState)

	// Cursors elsewhere in the list keep working.
	assert.Equal(t, []int{4, 99}, drain(b))

	a.SetKey("a")
	assert.NoError(t, a.Err())
	assert.Equal(t, []int{1, 3, 4, 99}, drain(a))
}

func TestCursorRemoveWhileWalking(t *testing.T) {
	l := New[string, int]()
	for i := 0; i < 10; i++ {
		l.Add(i)
	}

	c := l.Cursor()
	for {
		v, ok := c.Next()
		if !ok {
			break
		}
		if v%2 == 1 {
			require.NoError(t, c.Remove())
		}
	}
	assert.Equal(t, []int{0, 2, 4, 6, 8}, l.Values())
	assert.NoError(t, c.Err())
}
