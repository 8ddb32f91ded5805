// Package vocab builds and maintains the term vocabulary, its Huffman
// coding for hierarchical softmax, and the unigram table used for
// negative sampling.
package vocab

import (
	"sort"

	"github.com/eske/multivec-go/werrors"
)

// UnkIndex is the index of the distinguished UNK sentinel, used as a
// placeholder for out-of-vocabulary tokens in tokenized sentences. It
// never appears in Vocabulary's word map.
const UnkIndex = -1

// Node is a Huffman leaf (a vocabulary term) or internal node.
// Internal nodes have Word == "" and IsLeaf == false; Left/Right are
// indices into the tree's combined leaf+internal arena (see Tree) and
// are meaningless for leaves.
type Node struct {
	Index   int
	Word    string
	Count   int64
	IsLeaf  bool
	Left    int
	Right   int
	Code    []uint8
	Parents []int
}

// Vocabulary maps words to their Node and tracks corpus-wide counters
// that are not vocabulary counts (training_words counts every token in
// the corpus, including ones later pruned by reduceVocab).
type Vocabulary struct {
	byWord map[string]*Node
	order  []*Node // index order: insertion order until Build re-sorts it by count (ties keep insertion order)

	TrainingWords int64
	TrainingLines int64
}

// WordCount returns the sum of counts over surviving vocabulary
// terms (distinct from TrainingWords, which counts every corpus
// token including ones later pruned).
func (v *Vocabulary) WordCount() int64 {
	var total int64
	for _, n := range v.order {
		total += n.Count
	}
	return total
}

// New returns an empty vocabulary.
func New() *Vocabulary {
	return &Vocabulary{byWord: make(map[string]*Node)}
}

// Size returns the number of distinct terms currently held.
func (v *Vocabulary) Size() int {
	return len(v.order)
}

// Lookup returns the node for w and whether it was found.
func (v *Vocabulary) Lookup(w string) (*Node, bool) {
	n, ok := v.byWord[w]
	return n, ok
}

// AddWord increments w's count, inserting it with a fresh sequential
// index and count 1 if it is not yet present.
func (v *Vocabulary) AddWord(w string) *Node {
	if n, ok := v.byWord[w]; ok {
		n.Count++
		return n
	}
	n := &Node{Index: len(v.order), Word: w, Count: 1, IsLeaf: true}
	v.byWord[w] = n
	v.order = append(v.order, n)
	return n
}

// ReduceVocab deletes every entry with Count < minCount and reassigns
// indices densely over [0, Size()), preserving relative order.
func (v *Vocabulary) ReduceVocab(minCount int64) {
	kept := v.order[:0]
	for _, n := range v.order {
		if n.Count < minCount {
			delete(v.byWord, n.Word)
			continue
		}
		kept = append(kept, n)
	}
	v.order = kept
	for i, n := range v.order {
		n.Index = i
	}
}

// SortedVocab returns nodes ordered by (count desc, word asc), the
// order used by vector export and top-N word selection. Huffman
// construction and whole-model persistence use Nodes() order instead.
func (v *Vocabulary) SortedVocab() []*Node {
	out := make([]*Node, len(v.order))
	copy(out, v.order)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// Nodes returns every leaf node in index order (insertion order, or
// after Build, count-descending order).
func (v *Vocabulary) Nodes() []*Node {
	return v.order
}

// Words returns every vocabulary term, in the same order as Nodes.
func (v *Vocabulary) Words() []string {
	out := make([]string, len(v.order))
	for i, n := range v.order {
		out[i] = n.Word
	}
	return out
}

// IndexOf returns the index of w, or (UnkIndex, false) if w is not in
// vocabulary.
func (v *Vocabulary) IndexOf(w string) (int, bool) {
	n, ok := v.byWord[w]
	if !ok {
		return UnkIndex, false
	}
	return n.Index, true
}

// RequireIndex is IndexOf wrapped in the shared OOV error, for call
// sites that treat an unknown word as a hard failure.
func (v *Vocabulary) RequireIndex(op, w string) (int, error) {
	idx, ok := v.IndexOf(w)
	if !ok {
		return UnkIndex, werrors.New(werrors.OOV, op, "word not in vocabulary: "+w)
	}
	return idx, nil
}
