package rtree

import (
	"fmt"
	"strings"
)

// DebugStructure renders the tree as an indented outline of boxes and ids,
// one line per node. It has no stability guarantee across versions of this
// package and is meant for tests and interactive debugging, not for a wire
// format — grounded on the teacher's ShipDB.DebugShowLayout and the
// commented-out layout printf in its insert().
func (t *Tree) DebugStructure() string {
	var b strings.Builder
	writeNode(&b, t.root, 0)
	return b.String()
}

func writeNode(b *strings.Builder, n *node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.leaf {
		fmt.Fprintf(b, "%sleaf box=%v entries=%d\n", indent, n.box, len(n.entries))
		for _, e := range n.entries {
			fmt.Fprintf(b, "%s  id=%d box=%v\n", indent, e.id, e.box)
		}
		return
	}
	fmt.Fprintf(b, "%sinternal box=%v children=%d\n", indent, n.box, len(n.entries))
	for _, e := range n.entries {
		writeNode(b, e.child, depth+1)
	}
}

// invariantViolations checks the structural invariants §3 requires after
// every public operation, returning a human-readable list of any that
// fail. Intended for use in tests, not in production call paths.
func (t *Tree) invariantViolations() []string {
	var problems []string
	if t.root.parent != nil {
		problems = append(problems, "root has a parent")
	}
	leafDepth := -1
	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		if n != t.root {
			if len(n.entries) < t.minEntries || len(n.entries) > t.maxEntries {
				problems = append(problems, fmt.Sprintf("node at depth %d has %d entries (want [%d,%d])", depth, len(n.entries), t.minEntries, t.maxEntries))
			}
		} else if len(n.entries) > t.maxEntries {
			problems = append(problems, fmt.Sprintf("root has %d entries (want <= %d)", len(n.entries), t.maxEntries))
		}
		want := mbrOf(n.entries)
		if want != n.box && len(n.entries) > 0 {
			problems = append(problems, fmt.Sprintf("node at depth %d has stale box %v (want %v)", depth, n.box, want))
		}
		if n.leaf {
			if leafDepth == -1 {
				leafDepth = depth
			} else if leafDepth != depth {
				problems = append(problems, fmt.Sprintf("leaf at depth %d, expected %d", depth, leafDepth))
			}
			for _, e := range n.entries {
				if t.index[e.id] != n {
					problems = append(problems, fmt.Sprintf("back-index for id %d does not point at its leaf", e.id))
				}
			}
			return
		}
		for _, e := range n.entries {
			if e.child.parent != n {
				problems = append(problems, fmt.Sprintf("child at depth %d has wrong parent pointer", depth+1))
			}
			walk(e.child, depth+1)
		}
	}
	walk(t.root, 0)
	if len(t.index) != t.size {
		problems = append(problems, fmt.Sprintf("back-index has %d entries, size is %d", len(t.index), t.size))
	}
	return problems
}
