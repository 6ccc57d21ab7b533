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

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mimuw-pw/conctree/childmap"
)

// handoff is the tag a node uses to remember which waiting class it
// just signalled, so that class cannot be overtaken by a late-arriving
// competitor of a different class before it gets a chance to run.
type handoff int

const (
	handoffNone    handoff = -1
	handoffWriter  handoff = 0
	handoffReaders handoff = 1
	handoffRemover handoff = 2
)

// Node represents one directory in the tree. Every field below the
// mutex is protected by it; children is additionally gated by the
// reader/writer/remover protocol implemented by the methods in this
// file, so that concurrent operations touching disjoint subtrees share
// only brief per-hop registrations on their common ancestors and never
// wait on each other's read or write locks.
//
// parent is a non-owning back-reference used solely to unwind
// in-subtree counters on every exit path (see rollback in traverse.go);
// ownership of a Node flows exclusively through its parent's children
// map (or, for the root, through the Tree that created it).
type Node struct {
	parent   *Node
	children *childmap.Map[*Node]

	mu       sync.Mutex
	readers  *sync.Cond
	writers  *sync.Cond
	removers *sync.Cond

	reading, writing int
	rWait, wWait     int
	inSubtree        int
	change           handoff

	log *logrus.Logger
}

func newNode(parent *Node, log *logrus.Logger) *Node {
	n := &Node{
		parent:   parent,
		children: childmap.New[*Node](),
		change:   handoffNone,
		log:      log,
	}
	n.readers = sync.NewCond(&n.mu)
	n.writers = sync.NewCond(&n.mu)
	n.removers = sync.NewCond(&n.mu)
	return n
}

func (n *Node) logger() *logrus.Logger {
	if n.log != nil {
		return n.log
	}
	return logrus.StandardLogger()
}

// BeforeRead blocks the calling goroutine until it may read n.children,
// then registers it as a reader. Readers may proceed as soon as no
// writer holds or is waiting on the node; writers are given priority
// over fresh readers so they cannot starve, but a writer handing off
// to readers chains the wakeup through every queued reader before a
// new writer gets a turn.
func (n *Node) BeforeRead() {
	if n == nil {
		return
	}
	n.mu.Lock()
	if n.wWait > 0 || n.writing > 0 {
		n.logger().WithField("rWait", n.rWait+1).Trace("before_read: blocking on a writer")
		n.rWait++
		n.readers.Wait()
		for n.writing > 0 {
			n.readers.Wait()
		}
		n.rWait--
	}
	n.reading++
	if n.rWait > 0 {
		n.change = handoffReaders
		n.readers.Signal()
	}
	n.mu.Unlock()
}

// AfterRead unregisters the calling goroutine as a reader. The last
// reader to leave hands off to a waiting writer, if any.
func (n *Node) AfterRead() {
	if n == nil {
		return
	}
	n.mu.Lock()
	n.reading--
	if n.reading == 0 {
		n.change = handoffWriter
		n.writers.Signal()
	}
	n.mu.Unlock()
}

// BeforeWrite blocks until the calling goroutine may mutate n.children
// exclusively, then registers it as the writer. A writer may proceed
// only once no reader holds the node and no other writer does, and
// only once it is this writer's turn per the handoff tag (so a
// just-woken writer cannot be overtaken by a fresh reader that sneaks
// in while it is waking up).
func (n *Node) BeforeWrite() {
	if n == nil {
		return
	}
	n.mu.Lock()
	if n.reading > 0 || n.writing > 0 {
		n.logger().WithFields(logrus.Fields{"reading": n.reading, "writing": n.writing}).Debug("before_write: blocking")
		n.wWait++
		for n.change != handoffWriter || n.reading > 0 || n.writing > 0 {
			n.writers.Wait()
		}
		n.wWait--
	}
	n.writing++
	n.mu.Unlock()
}

// AfterWrite unregisters the calling goroutine as the writer and hands
// off: to waiting readers if any (chained as a burst), else to a
// waiting writer.
func (n *Node) AfterWrite() {
	if n == nil {
		return
	}
	n.mu.Lock()
	n.writing--
	if n.rWait > 0 {
		n.change = handoffReaders
		n.readers.Signal()
	} else if n.wWait > 0 {
		n.change = handoffWriter
		n.writers.Signal()
	}
	n.mu.Unlock()
}

// EnterSubtree records that the calling goroutine is now operating
// somewhere at or below n. It is nil-safe so traversal code can call it
// unconditionally even when a lookup finds no child.
func (n *Node) EnterSubtree() {
	if n == nil {
		return
	}
	n.mu.Lock()
	n.inSubtree++
	n.mu.Unlock()
}

// LeaveSubtree records that the calling goroutine has finished
// operating at or below n. The goroutine that brings the count to zero
// wakes a remover waiting to quiesce this node, if any.
func (n *Node) LeaveSubtree() {
	if n == nil {
		return
	}
	n.mu.Lock()
	n.inSubtree--
	if n.inSubtree == 0 {
		n.change = handoffRemover
		n.removers.Signal()
	}
	n.mu.Unlock()
}

// BeforeRemove blocks until n's entire subtree is quiescent (no
// goroutine is operating at or below n). It does not itself take any
// read or write registration: the caller is expected to already hold a
// write lock on n's parent, which prevents any new traversal from
// reaching n while this call is pending.
func (n *Node) BeforeRemove() {
	if n == nil {
		return
	}
	n.mu.Lock()
	if n.inSubtree > 0 {
		n.logger().WithField("inSubtree", n.inSubtree).Debug("before_remove: waiting for subtree to quiesce")
		for n.change != handoffRemover || n.inSubtree > 0 {
			n.removers.Wait()
		}
	}
	n.mu.Unlock()
}
