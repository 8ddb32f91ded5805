package bilingual

import (
	"github.com/eske/multivec-go/vecmath"
	"github.com/eske/multivec-go/werrors"
	"github.com/eske/multivec-go/word2vec"
)

// SimilarityNgrams averages pairwise cross-lingual similarity over two
// aligned token sequences, skipping pairs where either side is OOV.
// Fails ShapeMismatch if the sequences differ in length, AllOOV if no
// pair contributes.
func (m *Model) SimilarityNgrams(srcSeq, trgSeq []string, policy word2vec.VectorPolicy) (float32, error) {
	const op = "bilingual.SimilarityNgrams"
	if len(srcSeq) != len(trgSeq) {
		return 0, werrors.New(werrors.ShapeMismatch, op, "sequences must have equal length")
	}

	var sum float32
	var count int
	for i := range srcSeq {
		_, ok1 := m.src.VocabIndex(srcSeq[i])
		_, ok2 := m.trg.VocabIndex(trgSeq[i])
		if !ok1 || !ok2 {
			continue
		}
		sim, err := m.Similarity(srcSeq[i], trgSeq[i], policy)
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

// SimilaritySentence sums wordVec over known terms on each side, in
// their own model's space, and returns the cosine of the two sums.
// Returns 0 with no error if either side has no known terms.
func (m *Model) SimilaritySentence(srcSeq, trgSeq []string, policy word2vec.VectorPolicy) (float32, error) {
	srcVec, err := sumKnownVectors(m.src, srcSeq, policy)
	if err != nil {
		return 0, err
	}
	trgVec, err := sumKnownVectors(m.trg, trgSeq, policy)
	if err != nil {
		return 0, err
	}
	return vecmath.CosineSimilarity(srcVec, trgVec), nil
}

// SimilaritySentenceSyntax is SimilaritySentence weighted per-position
// by syntax_weights[tag]^(1-alpha) * idf^alpha, up to the shortest of
// each side's word/tag/idf triple. Unknown tags are treated as a
// lookup failure and the term is skipped.
func (m *Model) SimilaritySentenceSyntax(srcSeq, trgSeq, srcTags, trgTags []string, srcIDF, trgIDF []float64, alpha float64, policy word2vec.VectorPolicy) (float32, error) {
	srcVec, err := weightedSum(m.src, srcSeq, srcTags, srcIDF, alpha, policy)
	if err != nil {
		return 0, err
	}
	trgVec, err := weightedSum(m.trg, trgSeq, trgTags, trgIDF, alpha, policy)
	if err != nil {
		return 0, err
	}
	return vecmath.CosineSimilarity(srcVec, trgVec), nil
}

func sumKnownVectors(model *word2vec.Model, words []string, policy word2vec.VectorPolicy) (vecmath.Vector, error) {
	d := model.Dimension()
	if policy == word2vec.PolicyConcat {
		d *= 2
	}
	sum := vecmath.NewVector(d)
	for _, w := range words {
		idx, ok := model.VocabIndex(w)
		if !ok {
			continue
		}
		v, err := model.WordVec(idx, policy)
		if err != nil {
			return nil, err
		}
		sum.AddInPlace(v)
	}
	return sum, nil
}

func weightedSum(model *word2vec.Model, words, tags []string, idf []float64, alpha float64, policy word2vec.VectorPolicy) (vecmath.Vector, error) {
	d := model.Dimension()
	if policy == word2vec.PolicyConcat {
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
		idx, ok := model.VocabIndex(words[i])
		if !ok {
			continue
		}
		weight, ok := word2vec.SyntaxWeight(tags[i])
		if !ok {
			continue
		}
		v, err := model.WordVec(idx, policy)
		if err != nil {
			return nil, err
		}
		scale := word2vec.Pow(weight, 1-alpha) * word2vec.Pow(idf[i], alpha)
		sum.AddScaledInPlace(v, float32(scale))
	}
	return sum, nil
}
