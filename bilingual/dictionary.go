package bilingual

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/eske/multivec-go/vecmath"
	"github.com/eske/multivec-go/word2vec"
)

// Pair is a single induced (source term, target term) translation.
type Pair struct {
	Source string
	Target string
}

// unitVec is a vocabulary term with its policy vector normalized to
// unit length, the representation nearest-neighbor search runs on.
type unitVec struct {
	word string
	vec  vecmath.Vector
}

// DictionaryInduction finds, for every term in srcVocab present in the
// source model, the target-vocabulary term (restricted to trgVocab)
// whose vector has the highest cosine similarity, and returns the
// resulting pairs in srcVocab order. Terms absent from their model are
// silently skipped, as is any source term for which the target
// vocabulary is empty.
//
// With Threads > 1, srcVocab is partitioned into contiguous slices and
// each slice is scanned against the full target list concurrently;
// the result is identical regardless of thread count because pairs
// are concatenated back in slice order.
func (m *Model) DictionaryInduction(srcVocab, trgVocab []string, policy word2vec.VectorPolicy) ([]Pair, error) {
	srcWords, err := m.unitVectors(m.src, srcVocab, policy)
	if err != nil {
		return nil, err
	}
	trgWords, err := m.unitVectors(m.trg, trgVocab, policy)
	if err != nil {
		return nil, err
	}

	if m.Config.Threads <= 1 || len(srcWords) < m.Config.Threads {
		return inducePairs(srcWords, trgWords), nil
	}

	splits := make([][]unitVec, m.Config.Threads)
	size := len(srcWords) / m.Config.Threads
	for i := 0; i < m.Config.Threads; i++ {
		begin := i * size
		end := begin + size
		if i == m.Config.Threads-1 {
			end = len(srcWords)
		}
		splits[i] = srcWords[begin:end]
	}

	results := make([][]Pair, m.Config.Threads)
	g, _ := errgroup.WithContext(context.Background())
	for i := range splits {
		i := i
		g.Go(func() error {
			results[i] = inducePairs(splits[i], trgWords)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var dict []Pair
	for _, r := range results {
		dict = append(dict, r...)
	}
	return dict, nil
}

// DictionaryInductionTopN restricts induction to the srcCount and
// trgCount highest-frequency terms of each vocabulary (0 means "all")
// and delegates to DictionaryInduction.
func (m *Model) DictionaryInductionTopN(srcCount, trgCount int, policy word2vec.VectorPolicy) ([]Pair, error) {
	srcVocab := topNWords(m.src.SortedWords(), srcCount)
	trgVocab := topNWords(m.trg.SortedWords(), trgCount)
	return m.DictionaryInduction(srcVocab, trgVocab, policy)
}

func topNWords(sorted []string, n int) []string {
	if n <= 0 || n > len(sorted) {
		return sorted
	}
	return sorted[:n]
}

// unitVectors looks up each word in model, skipping any not present,
// and returns its policy vector normalized to unit length.
func (m *Model) unitVectors(model *word2vec.Model, words []string, policy word2vec.VectorPolicy) ([]unitVec, error) {
	out := make([]unitVec, 0, len(words))
	for _, w := range words {
		idx, ok := model.VocabIndex(w)
		if !ok {
			continue
		}
		vec, err := model.WordVec(idx, policy)
		if err != nil {
			return nil, err
		}
		norm := vec.Norm()
		if norm == 0 {
			continue
		}
		out = append(out, unitVec{word: w, vec: vec.Scale(1 / norm)})
	}
	return out, nil
}

// inducePairs scans every source vector against every target vector
// and keeps the argmax-similarity target per source term. Since both
// sides are unit-normalized, the dot product is the cosine
// similarity.
func inducePairs(srcWords, trgWords []unitVec) []Pair {
	var dict []Pair
	for _, s := range srcWords {
		bestSim := float32(0)
		bestIdx := -1
		for i, t := range trgWords {
			sim := s.vec.Dot(t.vec)
			if bestIdx == -1 || sim > bestSim {
				bestIdx = i
				bestSim = sim
			}
		}
		if bestIdx >= 0 {
			dict = append(dict, Pair{Source: s.word, Target: trgWords[bestIdx].word})
		}
	}
	return dict
}
