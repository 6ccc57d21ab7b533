// Copyright 2020 Nathan Taylor (nbtaylor@gmail.com)
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package childmap provides the name-to-child container a directory
// node uses to hold its entries. It carries no locking of its own: the
// tree package serializes every access to a Map through the owning
// node's reader/writer/remover protocol, so Map itself stays a thin,
// allocation-cheap wrapper over a built-in map.
package childmap

// Map is a mapping from a path component to a child handle of type V.
// The zero value is not usable; construct with New.
type Map[V any] struct {
	entries map[string]V
}

// New returns an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{entries: make(map[string]V)}
}

// Get returns the child stored under name, if any.
func (m *Map[V]) Get(name string) (V, bool) {
	v, ok := m.entries[name]
	return v, ok
}

// Insert stores v under name, overwriting any previous entry.
func (m *Map[V]) Insert(name string, v V) {
	m.entries[name] = v
}

// Remove deletes name from the map. It is a no-op if name is absent.
func (m *Map[V]) Remove(name string) {
	delete(m.entries, name)
}

// Size returns the number of entries currently in the map.
func (m *Map[V]) Size() int {
	return len(m.entries)
}

// Iterate calls fn once per entry, in the unspecified order the
// underlying built-in map yields. Iterate stops early if fn returns
// false.
func (m *Map[V]) Iterate(fn func(name string, v V) bool) {
	for name, v := range m.entries {
		if !fn(name, v) {
			return
		}
	}
}

// Names returns every key currently in the map, in unspecified order.
func (m *Map[V]) Names() []string {
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	return names
}
