package algorithms

import (
	"cmp"
	"slices"

	"github.com/dd0wney/netmatrix/pkg/storage"
)

// Path is one search state: the node reached, how much it cost, how many hops
// it took, and the state it was extended from. Paths are immutable once built
// and share prefixes through prev, so a search produces a tree of Paths
// rooted at the source.
type Path struct {
	cost int64
	hops int
	node *storage.Node
	prev *Path

	sequence []string // lazily built, never rebuilt
}

func newPath(cost int64, hops int, node *storage.Node, prev *Path) *Path {
	return &Path{cost: cost, hops: hops, node: node, prev: prev}
}

// Cost returns the cumulative cost from the origin.
func (p *Path) Cost() int64 { return p.cost }

// Hops returns the number of edges walked from the origin.
func (p *Path) Hops() int { return p.hops }

// Node returns the node this path ends at.
func (p *Path) Node() *storage.Node { return p.node }

// Prev returns the path this one extends, or nil at the origin.
func (p *Path) Prev() *Path { return p.prev }

// Sequence returns the node IDs from the origin to the current node. The
// slice is computed on first use and cached; callers must not modify it.
func (p *Path) Sequence() []string {
	if p.sequence != nil {
		return p.sequence
	}

	seq := make([]string, p.hops+1)
	i := p.hops
	for cur := p; cur != nil && i >= 0; cur = cur.prev {
		seq[i] = cur.node.ID()
		i--
	}
	p.sequence = seq
	return seq
}

// ComparePaths orders paths by cost, then hop count, then the identifier
// sequence compared element-wise (a proper prefix sorts first).
func ComparePaths(a, b *Path) int {
	if c := cmp.Compare(a.cost, b.cost); c != 0 {
		return c
	}
	if c := cmp.Compare(a.hops, b.hops); c != 0 {
		return c
	}
	return slices.Compare(a.Sequence(), b.Sequence())
}
