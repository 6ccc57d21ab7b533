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
	"syscall"

	"github.com/mimuw-pw/conctree/pathutil"
)

// Move relocates the directory named source to target, optionally
// renaming it (source's final component need not match target's).
//
// The deadlock-avoidance device is the BeforeWrite on common below: before descending
// into either side individually, Move takes a single write lock on the
// deepest node common to both source's and target's parent paths. Any
// concurrent Move whose source and target share that same ancestor (or
// any ancestor of it) must serialize there before acquiring any deeper
// lock, which imposes a total order on intersecting moves and rules out
// the lock-order cycle that taking parent_src's and parent_trg's locks
// independently would otherwise risk.
func (t *Tree) Move(source, target string) error {
	if !pathutil.Valid(source) {
		return syscall.EINVAL
	}
	if !pathutil.Valid(target) {
		return syscall.EINVAL
	}
	if source == pathutil.Root {
		return syscall.EBUSY
	}
	if target == pathutil.Root {
		return syscall.EEXIST
	}
	if pathutil.IsStrictPrefix(source, target) {
		return ErrMovingToSubtree
	}

	srcComponents := pathutil.Components(source)
	trgComponents := pathutil.Components(target)
	srcName := srcComponents[len(srcComponents)-1]
	trgName := trgComponents[len(trgComponents)-1]
	// The divergence search below only ever compares parent-level
	// components: the final component of source and target is never a
	// candidate for the common ancestor, even when source and target
	// name siblings in the same directory (that directory becomes the
	// common ancestor with zero parent components left to resolve).
	srcParents := srcComponents[:len(srcComponents)-1]
	trgParents := trgComponents[:len(trgComponents)-1]

	common := t.root
	common.EnterSubtree()

	i := 0
	for i < len(srcParents) && i < len(trgParents) && srcParents[i] == trgParents[i] {
		common.BeforeRead()
		child, ok := common.children.Get(srcParents[i])
		child.EnterSubtree()
		common.AfterRead()
		if !ok {
			rollback(common)
			return syscall.ENOENT
		}
		common = child
		i++
	}

	// Writer-lock the common ancestor so no intersecting move can race
	// past this point before we've locked both sides individually.
	common.BeforeWrite()

	parentSrc, err := descendFrom(common, srcParents[i:])
	if err != nil {
		// descendFrom already released common and unwound to the root.
		return err
	}

	parentTrg, err := descendFrom(common, trgParents[i:])
	if err != nil {
		// descendFrom already released common and unwound to the root;
		// only the already-resolved source branch still needs unwinding.
		rollbackTo(common, parentSrc)
		return err
	}

	if parentSrc != common {
		parentSrc.BeforeWrite()
	}
	if parentTrg != common && parentTrg != parentSrc {
		parentTrg.BeforeWrite()
	}

	// Both parents are now individually write-locked (or are the
	// common ancestor itself); release the common ancestor's lock so it
	// stops blocking unrelated traffic, unless one of the parents IS
	// the common ancestor, in which case cleanup below releases it once.
	commonHeld := common == parentSrc || common == parentTrg
	if !commonHeld {
		common.AfterWrite()
	}

	cleanup := func() {
		if parentTrg != common && parentTrg != parentSrc {
			parentTrg.AfterWrite()
		}
		rollbackTo(common, parentTrg)
		if parentSrc != common {
			parentSrc.AfterWrite()
		}
		rollbackTo(common, parentSrc)
		if commonHeld {
			common.AfterWrite()
		}
		rollback(common)
	}

	childSrc, ok := parentSrc.children.Get(srcName)
	if !ok {
		cleanup()
		return syscall.ENOENT
	}

	if source == target {
		cleanup()
		return nil
	}

	if _, exists := parentTrg.children.Get(trgName); exists {
		cleanup()
		return syscall.EEXIST
	}

	// Wait for source's subtree to quiesce before re-parenting it.
	childSrc.BeforeRemove()

	parentSrc.children.Remove(srcName)
	parentTrg.children.Insert(trgName, childSrc)
	childSrc.parent = parentTrg

	cleanup()
	return nil
}
