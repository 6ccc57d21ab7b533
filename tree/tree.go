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

// Package tree implements a concurrent, in-memory, filesystem-like
// namespace of named directories. list, create, remove and move may
// all run concurrently; the node synchronizer in node.go and the
// traversal/rollback helpers in traverse.go together guarantee that
// operations whose affected nodes overlap behave as though run in some
// serial order, while non-overlapping operations proceed in parallel.
package tree

import (
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/mimuw-pw/conctree/pathutil"
)

// Tree owns a root Node and nothing else; every other Node is owned by
// exactly one parent's children map.
type Tree struct {
	root *Node
	log  *logrus.Logger
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithLogger directs the tree's internal lock tracing to l instead of
// logrus's standard logger.
func WithLogger(l *logrus.Logger) Option {
	return func(t *Tree) { t.log = l }
}

// New returns a fresh, empty Tree: a root directory with no parent and
// no children.
func New(opts ...Option) *Tree {
	t := &Tree{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(t)
	}
	t.root = newNode(nil, t.log)
	return t
}

// Free releases a Tree. It must be called only once no goroutine is
// still using it; conctree does not track outstanding operations, so
// calling Free concurrently with a List/Create/Remove/Move is a race
// the caller must avoid, exactly as tree_free required of its callers.
func (t *Tree) Free() {
	t.root = nil
}

// List returns the direct children of the directory named by path, as
// a newline-separated listing in unspecified order, and true. It
// returns ("", false) if path is malformed or names a directory that
// does not exist.
func (t *Tree) List(path string) (string, bool) {
	if !pathutil.Valid(path) {
		return "", false
	}
	node, err := descend(t.root, pathutil.Components(path))
	if err != nil {
		return "", false
	}
	node.BeforeRead()
	listing := pathutil.FormatListing(node.children.Names())
	node.AfterRead()
	rollback(node)
	return listing, true
}

// Create makes a new, empty directory at path. path's parent must
// already exist and path itself must not.
func (t *Tree) Create(path string) error {
	if !pathutil.Valid(path) {
		return syscall.EINVAL
	}
	if path == pathutil.Root {
		return syscall.EEXIST
	}
	components := pathutil.Components(path)
	name := components[len(components)-1]

	parent, err := descend(t.root, components[:len(components)-1])
	if err != nil {
		return err
	}

	parent.BeforeWrite()
	if _, exists := parent.children.Get(name); exists {
		cleanupWrite(parent)
		return syscall.EEXIST
	}
	child := newNode(parent, t.log)
	parent.children.Insert(name, child)
	cleanupWrite(parent)
	return nil
}

// Remove deletes the empty directory named by path.
func (t *Tree) Remove(path string) error {
	if !pathutil.Valid(path) {
		return syscall.EINVAL
	}
	if path == pathutil.Root {
		return syscall.EBUSY
	}
	components := pathutil.Components(path)
	name := components[len(components)-1]

	parent, err := descend(t.root, components[:len(components)-1])
	if err != nil {
		return err
	}

	parent.BeforeWrite()
	child, exists := parent.children.Get(name)
	if !exists {
		cleanupWrite(parent)
		return syscall.ENOENT
	}

	// Wait for the target's subtree to quiesce before touching it.
	child.BeforeRemove()

	if child.children.Size() > 0 {
		cleanupWrite(parent)
		return syscall.ENOTEMPTY
	}

	parent.children.Remove(name)
	cleanupWrite(parent)

	// Flush a just-exited signaller before the node is dropped, the
	// same relock/unlock tree_remove performed to satisfy helgrind.
	child.mu.Lock()
	child.mu.Unlock() //nolint:staticcheck // intentional: see comment above.

	return nil
}
