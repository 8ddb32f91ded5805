package vocab

import (
	"sort"

	"github.com/eske/multivec-go/werrors"
)

// Tree holds the Huffman coding built over a Vocabulary's leaves: an
// arena of V-1 internal nodes plus, for every leaf, the code and
// parent-index path recorded directly on the leaf's *Node.
//
// Children are addressed as arena indices over the combined space of
// leaves and internal nodes, the same trick the teacher's
// CreateBinaryTree uses with its count/binaryt/parent_node arrays:
// indices [0, V) are leaves (the vocabulary index), indices
// [V, 2V-1) are internal nodes (arena index - V is the internal
// index stored on Node.Index for internal entries).
type Tree struct {
	vocabSize int
	Internal  []*Node // len == vocabSize-1, Index 0..vocabSize-2, in construction order
}

// IsLeafRef reports whether a child reference into the combined arena
// addresses a vocabulary leaf rather than an internal node.
func (t *Tree) IsLeafRef(ref int) bool {
	return ref < t.vocabSize
}

// Root returns the arena index of the tree's root, the last internal
// node created.
func (t *Tree) Root() int {
	return t.vocabSize + len(t.Internal) - 1
}

// Build constructs the Huffman tree over v's current leaves and
// records Code/Parents on every leaf. Ties in count are broken by
// insertion order: leaves are pre-sorted by count descending with a
// stable sort, so equal-count words keep the relative order in which
// they were first added to the vocabulary. Build also stores that
// count-sorted order back into v and reassigns every leaf's Index to
// its position in it.
//
// This is the standard two-pointer linear-time construction for an
// already count-sorted leaf sequence: at each step the next-smallest
// value is either the next unconsumed leaf or the next unconsumed
// internal node, whichever is smaller, so no priority queue is
// needed.
func Build(v *Vocabulary) (*Tree, error) {
	n := v.Size()
	if n < 2 {
		return nil, werrors.New(werrors.InvalidInput, "vocab.Build", "vocabulary must have at least 2 terms")
	}

	leaves := make([]*Node, n)
	copy(leaves, v.order)
	sort.SliceStable(leaves, func(i, j int) bool { return leaves[i].Count > leaves[j].Count })
	// leaves[i].Index must address leaf i in the combined arena, so
	// reassign indices to match this Huffman-order sort.
	for i, leaf := range leaves {
		leaf.Index = i
	}
	v.order = leaves
	for _, leaf := range leaves {
		v.byWord[leaf.Word] = leaf
	}

	count := make([]int64, 2*n-1)
	binaryBit := make([]uint8, 2*n-1)
	parent := make([]int, 2*n-1)
	for i, leaf := range leaves {
		count[i] = leaf.Count
	}
	const sentinel = int64(1) << 62
	for i := n; i < 2*n-1; i++ {
		count[i] = sentinel
	}

	internal := make([]*Node, n-1)
	pos1, pos2 := n-1, n
	for a := 0; a < n-1; a++ {
		min1 := popSmaller(count, &pos1, &pos2)
		min2 := popSmaller(count, &pos1, &pos2)
		combinedIdx := n + a
		count[combinedIdx] = count[min1] + count[min2]
		parent[min1] = combinedIdx
		parent[min2] = combinedIdx
		binaryBit[min2] = 1

		// min1 always keeps bit 0 (left) and min2 bit 1 (right): see
		// binaryBit[min2] = 1 above, binaryBit[min1] untouched at 0.
		internal[a] = &Node{Index: a, IsLeaf: false, Left: min1, Right: min2}
	}

	t := &Tree{vocabSize: n, Internal: internal}
	for _, leaf := range leaves {
		assignLeafCode(leaf, n, parent, binaryBit)
	}
	return t, nil
}

// popSmaller mirrors the teacher's pos1/pos2 walk: pos1 scans already
// count-sorted leaves from the high end down, pos2 scans freshly
// created internal nodes from the low end up, and at each step the
// smaller of the two current candidates is consumed.
func popSmaller(count []int64, pos1, pos2 *int) int {
	if *pos1 >= 0 && count[*pos1] < count[*pos2] {
		idx := *pos1
		*pos1--
		return idx
	}
	idx := *pos2
	*pos2++
	return idx
}

// assignLeafCode walks leaf up to the root via the parent array. At
// each step b contributes the bit it was assigned under its own
// parent, and that parent is recorded as an ancestor; reversing both
// at the end yields code and parents in root-to-leaf order, parents
// being root-inclusive and leaf-exclusive.
func assignLeafCode(leaf *Node, vocabSize int, parent []int, binaryBit []uint8) {
	var code []uint8
	var ancestors []int
	root := 2*vocabSize - 2
	b := leaf.Index
	for b != root {
		code = append(code, binaryBit[b])
		ancestors = append(ancestors, parent[b])
		b = parent[b]
	}
	reverseUint8(code)
	reverseInt(ancestors)
	// ancestors holds combined-arena indices (always >= vocabSize,
	// since parent[] only ever points at internal nodes); Parents is
	// documented in terms of internal-node indices (0..vocabSize-2).
	for i, a := range ancestors {
		ancestors[i] = a - vocabSize
	}
	leaf.Code = code
	leaf.Parents = ancestors
}

func reverseUint8(s []uint8) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseInt(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
