package rtree

import "github.com/heyvrann/RTSE/geom"

// entry is either a leaf entry (box, id) or an internal entry (child
// reference). For internal entries, box is always the child's tight MBR —
// it is the entry's "effective box" as far as ChooseLeaf and the pruning
// search are concerned.
type entry struct {
	box   geom.Box
	child *node  // nil for leaf entries
	id    uint64 // only meaningful for leaf entries
}

// node is either a leaf (entries hold (box, id) pairs) or internal (entries
// hold child references). Every node carries its own tight MBR so ChooseLeaf
// and the query engine never have to walk entries just to learn a node's
// extent; box is kept in sync by adjustTree, condenseTree and Update.
type node struct {
	parent  *node
	entries []entry
	leaf    bool
	box     geom.Box
}

// mbrOf returns the union of a set of entries' boxes, or the zero Box if
// entries is empty (an empty leaf root has no defined extent).
func mbrOf(entries []entry) geom.Box {
	if len(entries) == 0 {
		return geom.Box{}
	}
	mbr := entries[0].box
	for _, e := range entries[1:] {
		mbr = mbr.Union(e.box)
	}
	return mbr
}

// recalcBox recomputes n's box from its current entries.
func (n *node) recalcBox() {
	n.box = mbrOf(n.entries)
}

// parentIndex returns the index of n within its parent's entries. n must
// have a parent; a miss means the parent/child links are inconsistent,
// which is a bug in adjustTree or condenseTree, not a caller error.
func (n *node) parentIndex() int {
	for i, e := range n.parent.entries {
		if e.child == n {
			return i
		}
	}
	panic("rtree: node missing from its parent's entries")
}

// leafEntries flattens n's subtree into its constituent leaf-level entries.
// For a leaf node it is just n.entries; for an internal node it descends
// through every child. Used by condenseTree to gather an orphaned node's
// entries for reinsertion regardless of the orphan's height.
func (n *node) leafEntries() []entry {
	if n.leaf {
		out := make([]entry, len(n.entries))
		copy(out, n.entries)
		return out
	}
	var out []entry
	for _, e := range n.entries {
		out = append(out, e.child.leafEntries()...)
	}
	return out
}
