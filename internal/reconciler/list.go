// Package reconciler implements the patch algorithms spec.md §4.10
// describes: element attribute/child patching and the LIS-based keyed
// list mover. It depends on view and renderer but never the reverse.
package reconciler

import (
	"fmt"
	"sync"

	"github.com/vireoui/vireo/internal/reactivity"
	"github.com/vireoui/vireo/internal/renderer"
	"github.com/vireoui/vireo/internal/view"
)

// Keyed pairs a stable key with the Node that should render at that slot.
type Keyed struct {
	Key  string
	Node view.Node
}

// OnLeave, if supplied, receives a child being removed and a done
// callback the caller must invoke once any exit animation/transition
// finishes; until done() fires the child is kept reachable in the
// reconciler's pending-remove table rather than disposed immediately
// (spec.md §4.10 step 5).
type OnLeave func(n view.Node, done func())

// pendingRemoval is the SPEC_FULL §D concrete data structure backing
// deferred removal: keyed by the old key, so a reappearing key before
// done() fires can reclaim the same instance.
type pendingRemoval struct {
	node     view.Node
	finalize func()
}

// pendingTables holds one {key -> *pendingRemoval} table per List
// instance, keyed by the list's ID, so removals deferred by an onLeave
// handler remain reachable across diff calls until done() fires.
var pendingTables sync.Map // map[view.ID]map[string]*pendingRemoval

func pendingTableFor(listID view.ID) map[string]*pendingRemoval {
	v, _ := pendingTables.LoadOrStore(listID, map[string]*pendingRemoval{})
	return v.(map[string]*pendingRemoval)
}

// DiffList computes the new ordered [key -> Node] slate for a keyed List,
// reusing old instances by key, moving/creating/removing host nodes via
// the LIS algorithm in spec.md §4.10, and returns the final ordered keys
// and nodes to hand to view.List.SetOrdered.
//
// ctx is the Context new children are Init'd with; container/endAnchor
// bracket where new/moved nodes are inserted (List's own start/end
// anchors). onLeave is optional.
func DiffList(listID view.ID, ctx view.Context, container renderer.Node, endAnchor renderer.Node, old, next []Keyed, onLeave OnLeave) ([]string, []view.Node) {
	oldByKey := make(map[string]view.Node, len(old))
	for _, k := range old {
		oldByKey[k.Key] = k.Node
	}
	pending := pendingTableFor(listID)

	seen := make(map[string]int, len(next))
	sourceIndex := make([]int, len(next))
	needsCreate := make([]bool, len(next))
	finalNodes := make([]view.Node, len(next))
	finalKeys := make([]string, len(next))

	oldIndexOf := make(map[string]int, len(old))
	for i, k := range old {
		oldIndexOf[k.Key] = i
	}

	for i, entry := range next {
		key := entry.Key
		if dupAt, dup := seen[key]; dup {
			key = fmt.Sprintf("%s#dup%d", key, i)
			reactivity.Warnf("list: duplicate key %q at index %d (first seen at %d), synthesized %q", entry.Key, i, dupAt, key)
		}
		seen[key] = i
		finalKeys[i] = key

		if oldNode, existed := oldByKey[entry.Key]; existed {
			finalNodes[i] = oldNode
			sourceIndex[i] = oldIndexOf[entry.Key]
			delete(oldByKey, entry.Key)
		} else if reclaimed, ok := pending[entry.Key]; ok {
			// Still mounted (its leave was pending but not finalized):
			// reuse the instance and just move it, don't re-create.
			finalNodes[i] = reclaimed.node
			sourceIndex[i] = -1
			delete(pending, entry.Key)
		} else {
			finalNodes[i] = entry.Node
			sourceIndex[i] = -1
			needsCreate[i] = true
		}
	}

	lis := longestIncreasingSubsequence(sourceIndex)
	inLIS := make(map[int]struct{}, len(lis))
	for _, idx := range lis {
		inLIS[idx] = struct{}{}
	}

	var anchor renderer.Node = endAnchor
	for i := len(finalNodes) - 1; i >= 0; i-- {
		n := finalNodes[i]
		switch {
		case needsCreate[i]:
			n.Init(ctx)
			n.Mount(container, anchor, renderer.Insert)
		case isInLIS(inLIS, i):
			// Stays in place relative to its LIS neighbors; no host move.
		default:
			ctx.Renderer.Insert(n.HostNode(), anchor)
		}
		anchor = n.HostNode()
	}

	for key, leftover := range oldByKey {
		removeChild(pending, key, leftover, onLeave)
	}

	return finalKeys, finalNodes
}

func isInLIS(inLIS map[int]struct{}, i int) bool {
	_, ok := inLIS[i]
	return ok
}

// removeChild finalizes or defers removal of a child no longer present in
// the new keyed set. A deferred child is registered in pending so a
// reappearing key before done() fires reclaims the same instance instead
// of creating a new one (spec.md §4.10 step 5).
func removeChild(pending map[string]*pendingRemoval, key string, n view.Node, onLeave OnLeave) {
	if onLeave == nil {
		n.Dispose()
		return
	}
	p := &pendingRemoval{node: n}
	pending[key] = p
	p.finalize = func() {
		delete(pending, key)
		p.node.Dispose()
	}
	onLeave(n, func() { p.finalize() })
}

// longestIncreasingSubsequence returns the indices (into seq) of one
// longest strictly-increasing subsequence of seq, ignoring -1 entries
// (spec.md §4.10 step 3). O(n log n) via binary search plus a
// predecessor array for backtracking.
func longestIncreasingSubsequence(seq []int) []int {
	n := len(seq)
	tails := make([]int, 0, n)    // tails[k] = index into seq of the smallest tail of an increasing run of length k+1
	predecessors := make([]int, n)
	for i := range predecessors {
		predecessors[i] = -1
	}

	for i, v := range seq {
		if v == -1 {
			continue
		}
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			predecessors[i] = tails[lo-1]
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	result := make([]int, len(tails))
	k := -1
	if len(tails) > 0 {
		k = tails[len(tails)-1]
	}
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = k
		if k == -1 {
			break
		}
		k = predecessors[k]
	}
	return result
}
