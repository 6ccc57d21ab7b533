package childmap

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInsertRemove(t *testing.T) {
	m := New[int]()
	assert.Equal(t, 0, m.Size())

	_, ok := m.Get("a")
	assert.False(t, ok)

	m.Insert("a", 1)
	m.Insert("b", 2)
	assert.Equal(t, 2, m.Size())

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	m.Insert("a", 3)
	v, ok = m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, m.Size())

	m.Remove("a")
	assert.Equal(t, 1, m.Size())
	_, ok = m.Get("a")
	assert.False(t, ok)

	m.Remove("nonexistent")
	assert.Equal(t, 1, m.Size())
}

func TestNamesAndIterate(t *testing.T) {
	m := New[string]()
	m.Insert("a", "1")
	m.Insert("b", "2")
	m.Insert("c", "3")

	names := m.Names()
	sort.Strings(names)
	assert.Equal(t, []string{"a", "b", "c"}, names)

	seen := map[string]string{}
	m.Iterate(func(name string, v string) bool {
		seen[name] = v
		return true
	})
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": "3"}, seen)
}

func TestIterateStopsEarly(t *testing.T) {
	m := New[int]()
	for i := 0; i < 10; i++ {
		m.Insert(string(rune('a'+i)), i)
	}
	count := 0
	m.Iterate(func(name string, v int) bool {
		count++
		return count < 3
	})
	assert.Equal(t, 3, count)
}
