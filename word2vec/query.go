package word2vec

import (
	"math"
	"sort"

	"github.com/eske/multivec-go/vecmath"
	"github.com/eske/multivec-go/vocab"
	"github.com/eske/multivec-go/werrors"
)

// syntaxWeights are the fixed Universal POS Tagset weights used by
// similaritySentenceSyntax.
var syntaxWeights = map[string]float64{
	"VERB": 0.75,
	"NOUN": 1.00,
	"PRON": 0.10,
	"ADJ":  0.75,
	"ADV":  0.50,
	"ADP":  0.10,
	"CONJ": 0.10,
	"DET":  0.10,
	"NUM":  0.50,
	"PRT":  0.10,
	"X":    0.50,
	".":    0.05,
}

// WordVec returns the vector exposed for vocabulary index idx under
// policy: 0 input only, 1 concatenation of input and output (length
// 2D), 2 element-wise sum of input and output, 3 output only.
// Policies 1-3 require Config.Negative > 0.
func (m *Model) WordVec(idx int, policy VectorPolicy) (vecmath.Vector, error) {
	const op = "word2vec.WordVec"
	if err := requiresOutputWeights(policy, m.Config.Negative); err != nil {
		return nil, err
	}
	if policy != PolicyInput && m.outputWeights == nil {
		return nil, werrors.New(werrors.InvalidInput, op, "policy requires output weights, which this model does not have")
	}
	if idx < 0 || idx >= m.inputWeights.Rows() {
		return nil, werrors.New(werrors.InvariantViolation, op, "vocabulary index out of range")
	}

	in := m.inputWeights.Row(idx)
	switch policy {
	case PolicyInput:
		return append(vecmath.Vector{}, in...), nil
	case PolicyConcat:
		return vecmath.Concat(in, m.outputWeights.Row(idx)), nil
	case PolicySum:
		return in.Add(m.outputWeights.Row(idx)), nil
	case PolicyOutput:
		return append(vecmath.Vector{}, m.outputWeights.Row(idx)...), nil
	default:
		return nil, werrors.New(werrors.InvalidInput, op, "unknown policy")
	}
}

// Similarity returns the cosine similarity of w1 and w2's vectors: 0
// if either is out of vocabulary, 1 if they are the same term.
func (m *Model) Similarity(w1, w2 string, policy VectorPolicy) (float32, error) {
	i1, ok1 := m.vocabulary.IndexOf(w1)
	i2, ok2 := m.vocabulary.IndexOf(w2)
	if !ok1 || !ok2 {
		return 0, nil
	}
	if i1 == i2 {
		return 1, nil
	}
	v1, err := m.WordVec(i1, policy)
	if err != nil {
		return 0, err
	}
	v2, err := m.WordVec(i2, policy)
	if err != nil {
		return 0, err
	}
	return vecmath.CosineSimilarity(v1, v2), nil
}

// Distance returns (1-similarity)/2, in [0,1].
func (m *Model) Distance(w1, w2 string, policy VectorPolicy) (float32, error) {
	sim, err := m.Similarity(w1, w2, policy)
	if err != nil {
		return 0, err
	}
	return (1 - sim) / 2, nil
}

// ScoredWord pairs a term with a similarity score, returned by the
// closest-neighbor queries.
type ScoredWord struct {
	Word       string
	Similarity float32
}

// Closest returns the n terms with highest cosine similarity to word,
// sorted descending, excluding word itself. Fails with OOV if word is
// absent from vocabulary.
func (m *Model) Closest(word string, n int, policy VectorPolicy) ([]ScoredWord, error) {
	const op = "word2vec.Closest"
	idx, err := m.vocabulary.RequireIndex(op, word)
	if err != nil {
		return nil, err
	}
	vec, err := m.WordVec(idx, policy)
	if err != nil {
		return nil, err
	}
	return m.closestToVector(vec, n, policy, idx)
}

// ClosestVector returns the n terms with highest cosine similarity to
// an arbitrary vector. No term is excluded.
func (m *Model) ClosestVector(vec vecmath.Vector, n int, policy VectorPolicy) ([]ScoredWord, error) {
	return m.closestToVector(vec, n, policy, vocab.UnkIndex)
}

// ClosestAmong restricts the search to candidates, failing with OOV
// if word is absent from vocabulary.
func (m *Model) ClosestAmong(word string, candidates []string, n int, policy VectorPolicy) ([]ScoredWord, error) {
	const op = "word2vec.ClosestAmong"
	idx, err := m.vocabulary.RequireIndex(op, word)
	if err != nil {
		return nil, err
	}
	vec, err := m.WordVec(idx, policy)
	if err != nil {
		return nil, err
	}

	var scored []ScoredWord
	for _, cand := range candidates {
		cIdx, ok := m.vocabulary.IndexOf(cand)
		if !ok || cIdx == idx {
			continue
		}
		cVec, err := m.WordVec(cIdx, policy)
		if err != nil {
			return nil, err
		}
		scored = append(scored, ScoredWord{Word: cand, Similarity: vecmath.CosineSimilarity(vec, cVec)})
	}
	return topN(scored, n), nil
}

func (m *Model) closestToVector(vec vecmath.Vector, n int, policy VectorPolicy, exclude int) ([]ScoredWord, error) {
	nodes := m.vocabulary.Nodes()
	scored := make([]ScoredWord, 0, len(nodes))
	for _, node := range nodes {
		if node.Index == exclude {
			continue
		}
		cVec, err := m.WordVec(node.Index, policy)
		if err != nil {
			return nil, err
		}
		scored = append(scored, ScoredWord{Word: node.Word, Similarity: vecmath.CosineSimilarity(vec, cVec)})
	}
	return topN(scored, n), nil
}

// topN sorts scored descending by similarity and resizes to
// min(n, len(scored)).
func topN(scored []ScoredWord, n int) []ScoredWord {
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Similarity > scored[j].Similarity })
	if n < len(scored) {
		scored = scored[:n]
	}
	return scored
}

// SimilarityNgrams averages pairwise similarity over two equal-length
// token sequences, skipping pairs where either side is OOV. Fails
// ShapeMismatch if the sequences differ in length, AllOOV if no pair
// contributes.
//
// The reference implementation this is ported from compares
// words2.size() != words2.size(), always false; the intended check
// (words1.size() != words2.size()) is used here.
func (m *Model) SimilarityNgrams(s1, s2 []string, policy VectorPolicy) (float32, error) {
	const op = "word2vec.SimilarityNgrams"
	if len(s1) != len(s2) {
		return 0, werrors.New(werrors.ShapeMismatch, op, "sequences must have equal length")
	}

	var sum float32
	var count int
	for i := range s1 {
		_, ok1 := m.vocabulary.IndexOf(s1[i])
		_, ok2 := m.vocabulary.IndexOf(s2[i])
		if !ok1 || !ok2 {
			continue
		}
		sim, err := m.Similarity(s1[i], s2[i], policy)
		if err != nil {
			return 0, err
		}
		sum += sim
		count++
	}
	if count == 0 {
		return 0, werrors.New(werrors.AllOOV, op, "no aligned pair has both terms in vocabulary")
	}
	return sum / float32(count), nil
}

// SimilaritySentence sums wordVec over known terms on each side and
// returns the cosine of the two sums. Returns 0 with no error if
// either side has no known terms (zero norm).
func (m *Model) SimilaritySentence(s1, s2 []string, policy VectorPolicy) (float32, error) {
	sum1, err := m.sumKnownVectors(s1, policy)
	if err != nil {
		return 0, err
	}
	sum2, err := m.sumKnownVectors(s2, policy)
	if err != nil {
		return 0, err
	}
	return vecmath.CosineSimilarity(sum1, sum2), nil
}

func (m *Model) sumKnownVectors(words []string, policy VectorPolicy) (vecmath.Vector, error) {
	d := m.Dimension()
	if policy == PolicyConcat {
		d *= 2
	}
	sum := vecmath.NewVector(d)
	for _, w := range words {
		idx, ok := m.vocabulary.IndexOf(w)
		if !ok {
			continue
		}
		v, err := m.WordVec(idx, policy)
		if err != nil {
			return nil, err
		}
		sum.AddInPlace(v)
	}
	return sum, nil
}

// SimilaritySentenceSyntax is SimilaritySentence weighted by
// syntax_weights[tag]^(1-alpha) * idf^alpha per position, up to the
// shortest of the four input sequences. Unknown tags are treated as a
// lookup failure and the term is skipped.
func (m *Model) SimilaritySentenceSyntax(s1, s2, tags1, tags2 []string, idf1, idf2 []float64, alpha float64, policy VectorPolicy) (float32, error) {
	sum1, err := m.weightedSum(s1, tags1, idf1, alpha, policy)
	if err != nil {
		return 0, err
	}
	sum2, err := m.weightedSum(s2, tags2, idf2, alpha, policy)
	if err != nil {
		return 0, err
	}
	return vecmath.CosineSimilarity(sum1, sum2), nil
}

func (m *Model) weightedSum(words, tags []string, idf []float64, alpha float64, policy VectorPolicy) (vecmath.Vector, error) {
	d := m.Dimension()
	if policy == PolicyConcat {
		d *= 2
	}
	sum := vecmath.NewVector(d)
	n := len(words)
	if len(tags) < n {
		n = len(tags)
	}
	if len(idf) < n {
		n = len(idf)
	}
	for i := 0; i < n; i++ {
		idx, ok := m.vocabulary.IndexOf(words[i])
		if !ok {
			continue
		}
		weight, ok := syntaxWeights[tags[i]]
		if !ok {
			continue
		}
		v, err := m.WordVec(idx, policy)
		if err != nil {
			return nil, err
		}
		scale := pow(weight, 1-alpha) * pow(idf[i], alpha)
		sum.AddScaledInPlace(v, float32(scale))
	}
	return sum, nil
}

// SoftWER computes the Levenshtein edit distance between hyp and ref,
// using embedding cosine distance as the substitution cost, and
// normalizes by len(ref).
func (m *Model) SoftWER(hyp, ref []string, policy VectorPolicy) (float32, error) {
	h, r := len(hyp), len(ref)
	if r == 0 {
		return 0, werrors.New(werrors.InvalidInput, "word2vec.SoftWER", "reference sequence is empty")
	}

	d := make([][]float32, h+1)
	for i := range d {
		d[i] = make([]float32, r+1)
	}
	for i := 0; i <= h; i++ {
		d[i][0] = float32(i)
	}
	for j := 0; j <= r; j++ {
		d[0][j] = float32(j)
	}

	for i := 1; i <= h; i++ {
		for j := 1; j <= r; j++ {
			sub, err := m.Distance(hyp[i-1], ref[j-1], policy)
			if err != nil {
				return 0, err
			}
			del := d[i-1][j] + 1
			ins := d[i][j-1] + 1
			subst := d[i-1][j-1] + sub
			d[i][j] = min3(del, ins, subst)
		}
	}
	return d[h][r] / float32(r), nil
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func pow(base, exp float64) float64 {
	return math.Pow(base, exp)
}

// Pow exposes the base^exp helper used to combine POS and IDF weights,
// for callers outside this package (bilingual sentence-syntax
// similarity) that need the exact same weighting arithmetic.
func Pow(base, exp float64) float64 { return pow(base, exp) }

// SyntaxWeight looks up the fixed Universal POS Tagset weight for tag,
// reporting false for unrecognized tags.
func SyntaxWeight(tag string) (float64, bool) {
	w, ok := syntaxWeights[tag]
	return w, ok
}
