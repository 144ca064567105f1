// Copyright (c) 2026 Karasu Dev. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in
// the LICENSE file.

package statcache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// order walks the recency list front to back and returns the filenames.
func (l *recencyList) order() []string {
	var names []string
	for h := l.head; h != noHandle; h = l.slots[h].next {
		names = append(names, l.slots[h].ent.name)
	}
	return names
}

func TestRecencyListBasics(t *testing.T) {
	l := newRecencyList()
	assert.Equal(t, 0, l.len())
	assert.Equal(t, noHandle, l.find("a"))

	_, ok := l.evictBack()
	assert.False(t, ok, "empty list has nothing to evict")

	ha := l.insertFront("a")
	hb := l.insertFront("b")
	hc := l.insertFront("c")
	assert.Equal(t, 3, l.len())
	assert.Equal(t, []string{"c", "b", "a"}, l.order())

	assert.Equal(t, ha, l.find("a"))
	assert.Equal(t, hb, l.find("b"))
	assert.Equal(t, hc, l.find("c"))
	assert.Equal(t, "a", l.entry(ha).name)
}

func TestRecencyListPromote(t *testing.T) {
	l := newRecencyList()
	ha := l.insertFront("a")
	l.insertFront("b")
	hc := l.insertFront("c")

	l.promote(ha)
	assert.Equal(t, []string{"a", "c", "b"}, l.order())

	t.Run("FrontIsNoop", func(t *testing.T) {
		l.promote(ha)
		assert.Equal(t, []string{"a", "c", "b"}, l.order())
	})

	t.Run("Middle", func(t *testing.T) {
		l.promote(hc)
		assert.Equal(t, []string{"c", "a", "b"}, l.order())
	})

	// Handles must survive promotions.
	assert.Equal(t, ha, l.find("a"))
	assert.Equal(t, hc, l.find("c"))
}

func TestRecencyListEvictBack(t *testing.T) {
	l := newRecencyList()
	l.insertFront("a")
	l.insertFront("b")
	l.insertFront("c")

	name, ok := l.evictBack()
	require.True(t, ok)
	assert.Equal(t, "a", name, "least recently used goes first")
	assert.Equal(t, noHandle, l.find("a"))
	assert.Equal(t, 2, l.len())

	name, ok = l.evictBack()
	require.True(t, ok)
	assert.Equal(t, "b", name)

	name, ok = l.evictBack()
	require.True(t, ok)
	assert.Equal(t, "c", name)
	assert.Equal(t, 0, l.len())
	assert.Equal(t, noHandle, l.head)
	assert.Equal(t, noHandle, l.tail)
}

func TestRecencyListRemove(t *testing.T) {
	l := newRecencyList()
	l.insertFront("a")
	hb := l.insertFront("b")
	l.insertFront("c")

	l.remove(hb)
	assert.Equal(t, []string{"c", "a"}, l.order())
	assert.Equal(t, noHandle, l.find("b"))
	assert.Equal(t, 2, l.len())
}

func TestRecencyListSlotReuse(t *testing.T) {
	l := newRecencyList()
	for i := 0; i < 4; i++ {
		l.insertFront(fmt.Sprintf("f%d", i))
	}
	arena := len(l.slots)

	for i := 0; i < 16; i++ {
		_, ok := l.evictBack()
		require.True(t, ok)
		l.insertFront(fmt.Sprintf("g%d", i))
	}

	assert.Equal(t, arena, len(l.slots), "freed slots must be recycled")
	assert.Equal(t, 4, l.len())
}

func TestRecencyListLookupConsistency(t *testing.T) {
	l := newRecencyList()
	for i := 0; i < 8; i++ {
		l.insertFront(fmt.Sprintf("f%d", i))
	}
	l.promote(l.find("f2"))
	l.promote(l.find("f5"))
	_, _ = l.evictBack()
	l.remove(l.find("f6"))

	// Every name in the lookup map resolves to a live list position and
	// the walk sees exactly the mapped names.
	names := l.order()
	assert.Equal(t, len(names), l.len())
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		h := l.find(name)
		require.NotEqual(t, noHandle, h)
		assert.Equal(t, name, l.entry(h).name)
		seen[name] = true
	}
	assert.Len(t, seen, l.len())
}
