package rtree

import (
	"math"

	"github.com/heyvrann/RTSE/geom"
)

// splitNode partitions an overflowing node's maxEntries+1 entries into two
// groups using Guttman's quadratic split: PickSeeds chooses the pair of
// entries that would waste the most space if forced into the same group,
// then PickNext repeatedly assigns whichever remaining entry has the
// strongest preference for one group over the other, until every entry is
// placed. n keeps the first group and is shrunk in place; the returned
// node holds the second group and still needs its parent pointer set by
// the caller.
//
// This replaces the teacher's R*-tree sort-by-axis split (chooseSplitAxis):
// the spec this tree implements calls for the classic quadratic algorithm,
// not R*'s margin-minimizing axis choice, so the split strategy itself was
// rewritten even though the surrounding node-splitting plumbing (shrink n
// in place, return a sibling, re-parent children) is the teacher's.
func (t *Tree) splitNode(n *node) *node {
	entries := n.entries
	seedA, seedB := pickSeeds(entries)

	group1 := []entry{entries[seedA]}
	group2 := []entry{entries[seedB]}
	box1 := group1[0].box
	box2 := group2[0].box

	remaining := make([]entry, 0, len(entries)-2)
	for i, e := range entries {
		if i != seedA && i != seedB {
			remaining = append(remaining, e)
		}
	}

	for len(remaining) > 0 {
		// Forced assignment: if one group can't reach minEntries without
		// every remaining entry, it gets all of them.
		if t.minEntries-len(group1) >= len(remaining) {
			for _, e := range remaining {
				group1 = append(group1, e)
				box1 = box1.Union(e.box)
			}
			remaining = nil
			break
		}
		if t.minEntries-len(group2) >= len(remaining) {
			for _, e := range remaining {
				group2 = append(group2, e)
				box2 = box2.Union(e.box)
			}
			remaining = nil
			break
		}

		pick, toGroup1 := pickNext(remaining, box1, box2, len(group1), len(group2))
		e := remaining[pick]
		remaining = append(remaining[:pick], remaining[pick+1:]...)
		if toGroup1 {
			group1 = append(group1, e)
			box1 = box1.Union(e.box)
		} else {
			group2 = append(group2, e)
			box2 = box2.Union(e.box)
		}
	}

	n.entries = group1
	n.recalcBox()
	sibling := &node{leaf: n.leaf, entries: group2, parent: n.parent}
	sibling.recalcBox()

	if n.leaf {
		for _, e := range sibling.entries {
			t.index[e.id] = sibling
		}
	} else {
		for _, e := range sibling.entries {
			e.child.parent = sibling
		}
	}
	return sibling
}

// pickSeeds chooses the pair of entries whose combined box wastes the most
// space relative to their individual areas — the pair least suited to
// sharing a node.
func pickSeeds(entries []entry) (int, int) {
	bestI, bestJ := 0, 1
	bestWaste := math.Inf(-1)
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			union := entries[i].box.Union(entries[j].box)
			waste := union.Area() - entries[i].box.Area() - entries[j].box.Area()
			if waste > bestWaste {
				bestWaste = waste
				bestI, bestJ = i, j
			}
		}
	}
	return bestI, bestJ
}

// pickNext chooses which of the remaining entries to place next, and into
// which group. It picks the entry whose enlargement of box1 versus box2
// differs the most, breaking ties by preferring the entry with the smaller
// own area, then by the smaller remaining-slice index (deterministic,
// independent of map or pointer order). The entry goes to whichever group
// would enlarge less, with further ties broken by smaller current group
// area and then by the smaller group (fewer entries so far).
func pickNext(remaining []entry, box1, box2 geom.Box, len1, len2 int) (index int, toGroup1 bool) {
	bestIdx := 0
	bestDiff := -1.0
	var bestD1, bestD2 float64
	for i, e := range remaining {
		d1 := box1.Enlargement(e.box)
		d2 := box2.Enlargement(e.box)
		diff := math.Abs(d1 - d2)
		if diff > bestDiff || (diff == bestDiff && e.box.Area() < remaining[bestIdx].box.Area()) {
			bestIdx, bestDiff, bestD1, bestD2 = i, diff, d1, d2
		}
	}
	switch {
	case bestD1 < bestD2:
		return bestIdx, true
	case bestD2 < bestD1:
		return bestIdx, false
	}
	switch {
	case box1.Area() < box2.Area():
		return bestIdx, true
	case box2.Area() < box1.Area():
		return bestIdx, false
	}
	return bestIdx, len1 <= len2
}
