// Package rtree implements a height-balanced R-tree for indexing
// axis-aligned boxes by a caller-chosen uint64 id. It supports insertion,
// deletion, in-place update, and window queries in logarithmic expected
// time on uniformly distributed data.
//
// The tree is single-threaded: callers that need concurrent access must
// serialize it themselves, e.g. with a sync.RWMutex around the whole Tree.
package rtree

import (
	"errors"

	"github.com/heyvrann/RTSE/geom"
)

// ErrDuplicateID is returned by Insert when id is already present.
var ErrDuplicateID = errors.New("rtree: id already present")

// ErrNotFound is returned by Erase and Update when id is not present.
var ErrNotFound = errors.New("rtree: id not found")

// ErrInvalidOptions is returned by New when the fan-out configuration is
// out of the recognized range.
var ErrInvalidOptions = errors.New("rtree: invalid fan-out options")

// Options configures a Tree's fan-out. MaxEntries is the maximum number of
// entries a non-root node may hold before it is split; MinEntries is the
// minimum a non-root node may hold before it is scheduled for condensation.
type Options struct {
	MaxEntries int
	MinEntries int
}

// DefaultOptions returns the (M, m) = (8, 4) configuration. The source this
// package is modeled on doesn't pin down concrete values; 8/4 is the
// textbook default and is documented here as the stable choice.
func DefaultOptions() Options {
	return Options{MaxEntries: 8, MinEntries: 4}
}

func (o Options) validate() error {
	if o.MaxEntries < 4 || o.MaxEntries > 64 {
		return ErrInvalidOptions
	}
	if o.MinEntries < 2 || o.MinEntries > o.MaxEntries/2 {
		return ErrInvalidOptions
	}
	return nil
}

// Tree is an in-memory R-tree mapping uint64 ids to geom.Box values.
// The zero value is not usable; construct one with New.
type Tree struct {
	root       *node
	maxEntries int
	minEntries int
	index      map[uint64]*node
	size       int
}

// New creates an empty Tree with the default fan-out (8, 4).
func New() *Tree {
	t, err := NewWithOptions(DefaultOptions())
	if err != nil {
		// DefaultOptions is always valid; a failure here is a bug in
		// this package, not something a caller can act on.
		panic(err)
	}
	return t
}

// NewWithOptions creates an empty Tree with the given fan-out bounds.
func NewWithOptions(opts Options) (*Tree, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Tree{
		root:       &node{leaf: true},
		maxEntries: opts.MaxEntries,
		minEntries: opts.MinEntries,
		index:      make(map[uint64]*node),
	}, nil
}

// Len returns the number of ids currently live in the tree.
func (t *Tree) Len() int {
	return t.size
}

// Insert adds (box, id) to the tree. It fails with ErrDuplicateID if id is
// already present; the tree is left unchanged in that case.
func (t *Tree) Insert(box geom.Box, id uint64) error {
	if _, exists := t.index[id]; exists {
		return ErrDuplicateID
	}
	t.insert(entry{box: box, id: id})
	t.size++
	return nil
}

// insert places e in the chosen leaf and adjusts the tree upward. Callers
// are responsible for uniqueness checks and size bookkeeping; insert itself
// is total and cannot fail, matching §7's requirement that once a caller's
// id has been validated, internal algorithms never error.
func (t *Tree) insert(e entry) {
	leaf := t.chooseLeaf(e.box)
	leaf.entries = append(leaf.entries, e)
	t.index[e.id] = leaf
	t.adjustTree(leaf)
}

// chooseLeaf descends from the root picking, at each internal node, the
// child whose box needs the least enlargement to include box; ties go to
// the child with the smaller current area, and further ties to the child
// at the smaller entry index, so the result never depends on iteration or
// memory-address order.
func (t *Tree) chooseLeaf(box geom.Box) *node {
	n := t.root
	for !n.leaf {
		best := 0
		bestEnlargement := n.entries[0].box.Enlargement(box)
		bestArea := n.entries[0].box.Area()
		for i := 1; i < len(n.entries); i++ {
			enlargement := n.entries[i].box.Enlargement(box)
			area := n.entries[i].box.Area()
			if enlargement < bestEnlargement ||
				(enlargement == bestEnlargement && area < bestArea) {
				best = i
				bestEnlargement = enlargement
				bestArea = area
			}
		}
		n = n.entries[best].child
	}
	return n
}

// adjustTree walks from n up to the root, recomputing each ancestor's MBR
// and splitting any node that overflowed. If the root itself has to split,
// a new root is created and the tree's height grows by one.
func (t *Tree) adjustTree(n *node) {
	for {
		n.recalcBox()
		var sibling *node
		if len(n.entries) > t.maxEntries {
			sibling = t.splitNode(n)
		}
		if n.parent == nil {
			if sibling != nil {
				t.root = &node{
					leaf: false,
					entries: []entry{
						{box: n.box, child: n},
						{box: sibling.box, child: sibling},
					},
				}
				n.parent = t.root
				sibling.parent = t.root
			}
			return
		}
		parent := n.parent
		parent.entries[n.parentIndex()].box = n.box
		if sibling != nil {
			parent.entries = append(parent.entries, entry{box: sibling.box, child: sibling})
			sibling.parent = parent
		}
		n = parent
	}
}

// Erase removes id from the tree. It fails with ErrNotFound if id is not
// live; the tree is left unchanged in that case.
func (t *Tree) Erase(id uint64) error {
	leaf, ok := t.index[id]
	if !ok {
		return ErrNotFound
	}
	for i, e := range leaf.entries {
		if e.id == id {
			leaf.entries = append(leaf.entries[:i], leaf.entries[i+1:]...)
			break
		}
	}
	delete(t.index, id)
	t.condenseTree(leaf)
	t.size--
	return nil
}

// condenseTree walks from leaf to the root. Any non-root node that dropped
// below minEntries is detached from its parent and its leaf-level entries
// are scheduled for reinsertion; surviving nodes just get their MBR
// tightened. Orphans are reinserted only after the whole path has been
// walked, and the root is demoted afterward if it ended up with a single
// child (or emptied out entirely).
func (t *Tree) condenseTree(leaf *node) {
	var orphans []*node
	n := leaf
	for n != t.root {
		parent := n.parent
		idx := n.parentIndex()
		if len(n.entries) < t.minEntries {
			parent.entries = append(parent.entries[:idx], parent.entries[idx+1:]...)
			orphans = append(orphans, n)
		} else {
			n.recalcBox()
			parent.entries[idx].box = n.box
		}
		n = parent
	}
	t.root.recalcBox()

	for _, orphan := range orphans {
		for _, e := range orphan.leafEntries() {
			t.insert(e)
		}
	}

	if !t.root.leaf && len(t.root.entries) == 1 {
		newRoot := t.root.entries[0].child
		newRoot.parent = nil
		t.root = newRoot
	}
}

// Update moves id's box to newBox. Because an update never changes a
// leaf's entry count, it can never trigger a split or underflow — it only
// ever needs to rewrite the entry and tighten ancestor MBRs, stopping as
// soon as an ancestor's MBR doesn't change. This is always correct, so it
// is the only code path Update has; there is no separate erase+insert
// fallback.
func (t *Tree) Update(id uint64, newBox geom.Box) error {
	leaf, ok := t.index[id]
	if !ok {
		return ErrNotFound
	}
	for i := range leaf.entries {
		if leaf.entries[i].id == id {
			leaf.entries[i].box = newBox
			break
		}
	}
	n := leaf
	for {
		newN := mbrOf(n.entries)
		changed := newN != n.box
		n.box = newN
		if n.parent == nil || !changed {
			return nil
		}
		n.parent.entries[n.parentIndex()].box = newN
		n = n.parent
	}
}

// QueryRange returns the ids of every entry whose box overlaps box. The
// result is an unordered set; callers must not rely on any particular
// order.
func (t *Tree) QueryRange(box geom.Box) []uint64 {
	var out []uint64
	searchNode(t.root, box, &out)
	return out
}

// searchNode is the recursive MBR-pruned traversal underlying QueryRange:
// for an internal node it descends into every child whose box overlaps the
// query, for a leaf it emits every entry whose box overlaps the query.
func searchNode(n *node, box geom.Box, out *[]uint64) {
	if n.leaf {
		for _, e := range n.entries {
			if e.box.Overlap(box) {
				*out = append(*out, e.id)
			}
		}
		return
	}
	for _, e := range n.entries {
		if e.box.Overlap(box) {
			searchNode(e.child, box, out)
		}
	}
}
