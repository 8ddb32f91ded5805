// Package bilingual aligns two independently trained monolingual
// embedding spaces: inducing a seed dictionary by nearest-neighbor
// search and fitting a linear map from source- to target-space by
// per-sample SGD.
package bilingual

import (
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/eske/multivec-go/vecmath"
	"github.com/eske/multivec-go/werrors"
	"github.com/eske/multivec-go/word2vec"
)

// Model owns two monolingual models and the optional mapping matrix
// that maps source input-vectors into target space. Like Model, it
// exclusively owns everything it allocates; there is no shared state
// with either sub-model beyond the read-only weights they expose.
type Model struct {
	Config *Config

	src *word2vec.Model
	trg *word2vec.Model

	mappingMu sync.RWMutex
	mapping   *mat.Dense // D_trg x D_src, nil until LearnMapping succeeds
}

// New binds src and trg, both of which must already be trained, under
// cfg.
func New(src, trg *word2vec.Model, cfg *Config) *Model {
	return &Model{Config: cfg, src: src, trg: trg}
}

// Source and Target expose the underlying monolingual models for
// direct monolingual queries.
func (m *Model) Source() *word2vec.Model { return m.src }
func (m *Model) Target() *word2vec.Model { return m.trg }

// HasMapping reports whether LearnMapping has successfully populated
// the mapping matrix.
func (m *Model) HasMapping() bool {
	m.mappingMu.RLock()
	defer m.mappingMu.RUnlock()
	return m.mapping != nil
}

// Similarity returns the cosine similarity between srcWord's and
// trgWord's vectors, 0 if either is out of vocabulary.
func (m *Model) Similarity(srcWord, trgWord string, policy word2vec.VectorPolicy) (float32, error) {
	srcIdx, ok := m.src.VocabIndex(srcWord)
	if !ok {
		return 0, nil
	}
	trgIdx, ok := m.trg.VocabIndex(trgWord)
	if !ok {
		return 0, nil
	}
	v1, err := m.src.WordVec(srcIdx, policy)
	if err != nil {
		return 0, err
	}
	v2, err := m.trg.WordVec(trgIdx, policy)
	if err != nil {
		return 0, err
	}
	return vecmath.CosineSimilarity(v1, v2), nil
}

// Distance is 1-similarity (unlike the monolingual /2 scaling: the two
// spaces are not known to share a common origin/scale, so halving
// would not keep the result in a meaningful range).
func (m *Model) Distance(srcWord, trgWord string, policy word2vec.VectorPolicy) (float32, error) {
	sim, err := m.Similarity(srcWord, trgWord, policy)
	if err != nil {
		return 0, err
	}
	return 1 - sim, nil
}

// TargetClosest finds the n target-vocabulary terms closest to
// srcWord's vector, in target space, failing OOV if srcWord is absent
// from the source vocabulary.
func (m *Model) TargetClosest(srcWord string, n int, policy word2vec.VectorPolicy) ([]word2vec.ScoredWord, error) {
	const op = "bilingual.TargetClosest"
	idx, ok := m.src.VocabIndex(srcWord)
	if !ok {
		return nil, werrors.New(werrors.OOV, op, "word not in source vocabulary: "+srcWord)
	}
	vec, err := m.src.WordVec(idx, policy)
	if err != nil {
		return nil, err
	}
	return m.trg.ClosestVector(vec, n, policy)
}

// SourceClosest is TargetClosest's mirror image: given a target-space
// word, it finds the n closest source-vocabulary terms.
func (m *Model) SourceClosest(trgWord string, n int, policy word2vec.VectorPolicy) ([]word2vec.ScoredWord, error) {
	const op = "bilingual.SourceClosest"
	idx, ok := m.trg.VocabIndex(trgWord)
	if !ok {
		return nil, werrors.New(werrors.OOV, op, "word not in target vocabulary: "+trgWord)
	}
	vec, err := m.trg.WordVec(idx, policy)
	if err != nil {
		return nil, err
	}
	return m.src.ClosestVector(vec, n, policy)
}
