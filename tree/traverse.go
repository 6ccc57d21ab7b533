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

package tree

import "syscall"

// rollback unwinds the in-subtree counter on every node from n up to
// and including the root. It is the sole reason a Node carries a
// parent back-link: every operation owes exactly one rollback call
// (directly, or via cleanupWrite or Move's cleanup closure) on every exit path,
// paired with the entering of the subtree it did on the way down.
func rollback(n *Node) {
	for cur := n; cur != nil; cur = cur.parent {
		cur.LeaveSubtree()
	}
}

// rollbackTo unwinds the in-subtree counter from n up to, but not
// including, stop. Used by Move to unwind a branch below the common
// ancestor without touching the ancestor's own counter, which the
// caller unwinds separately (once) via rollback.
func rollbackTo(stop, n *Node) {
	for cur := n; cur != nil && cur != stop; cur = cur.parent {
		cur.LeaveSubtree()
	}
}

// descend walks from root through the given path components, taking a
// brief read lock at each hop: before_read on the current node, a
// lookup, entering_subtree on the child found (nil-safe), after_read
// on the current node. It returns the node reached after consuming
// every component, or rolls back and returns syscall.ENOENT the moment
// a component is missing.
//
// Called with every component of a path it resolves the node itself
// (List); called with all but the last component it resolves the
// direct parent of the final component (Create, Remove).
func descend(root *Node, components []string) (*Node, error) {
	root.EnterSubtree()
	parent := root
	for _, name := range components {
		parent.BeforeRead()
		child, ok := parent.children.Get(name)
		child.EnterSubtree()
		parent.AfterRead()
		if !ok {
			rollback(parent)
			return nil, syscall.ENOENT
		}
		parent = child
	}
	return parent, nil
}

// descendFrom continues a traversal that has already reached common,
// walking the remaining components of one side (source or target) of a
// move. It never re-takes common's read lock, since the caller already
// holds common under a write lock; every node below common still uses
// the normal before_read/after_read protocol.
//
// On failure it performs the complete rollback owed by this call: its
// own partial descent below common, common's write lock, and the
// unwind from common up to the root — mirroring find_parent_move's
// self-contained cleanup in the reference implementation, so that a
// caller juggling two of these calls (source and target) never has to
// guess which parts of the rollback already happened.
func descendFrom(common *Node, components []string) (*Node, error) {
	parent := common
	for _, name := range components {
		if parent != common {
			parent.BeforeRead()
		}
		child, ok := parent.children.Get(name)
		child.EnterSubtree()
		if parent != common {
			parent.AfterRead()
		}
		if !ok {
			rollbackTo(common, parent)
			common.AfterWrite()
			rollback(common)
			return nil, syscall.ENOENT
		}
		parent = child
	}
	return parent, nil
}

func cleanupWrite(n *Node) {
	n.AfterWrite()
	rollback(n)
}
