package word2vec

import (
	"bufio"
	"os"

	"github.com/eske/multivec-go/vecmath"
	"github.com/eske/multivec-go/werrors"
)

// NewModelFromVectors builds a query-only model directly from a
// vocabulary and its pre-computed input vectors, bypassing Train
// entirely. This is the entry point for consuming vectors produced
// elsewhere (another run's SaveVectors output, a pretrained set from
// a different toolchain) without re-deriving them from a corpus.
//
// The result has no output_weights/output_weights_hs, so policies
// other than PolicyInput are unavailable until such a model is
// trained further, which this constructor does not support.
func NewModelFromVectors(cfg *Config, words []string, vectors [][]float32) (*Model, error) {
	const op = "word2vec.NewModelFromVectors"
	if len(words) != len(vectors) {
		return nil, werrors.New(werrors.ShapeMismatch, op, "words and vectors must have the same length")
	}
	m := NewModel(cfg)
	m.inputWeights = vecmath.NewMatrix(len(words), cfg.Dimension)
	for i, w := range words {
		m.vocabulary.AddWord(w)
		if len(vectors[i]) != cfg.Dimension {
			return nil, werrors.New(werrors.ShapeMismatch, op, "vector width does not match Config.Dimension")
		}
		copy(m.inputWeights.Row(i), vectors[i])
	}
	return m, nil
}

// SentVec infers a paragraph vector for sentence against the model's
// frozen weights: tokens absent from vocabulary are dropped, and the
// same kernel dispatch used during training runs with update=false,
// starting from a zero vector, over Config.Iterations passes whose
// learning rate decays linearly from LearningRate (pass k uses
// LearningRate*(1-k/Iterations), so the last pass uses
// LearningRate/Iterations).
func (m *Model) SentVec(sentence string) (vecmath.Vector, error) {
	const op = "word2vec.SentVec"

	rawNodes := m.getNodes(sentence)
	nodes := rawNodes[:0]
	for _, n := range rawNodes {
		if n.Index >= 0 {
			nodes = append(nodes, n)
		}
	}
	if len(nodes) == 0 {
		return nil, werrors.New(werrors.InvalidInput, op, "sentence too short or all out of vocabulary")
	}

	sentVec := vecmath.NewVector(m.Dimension())
	rng := vecmath.NewRNG(1)
	iterations := m.Config.Iterations

	for k := 0; k < iterations; k++ {
		alpha := m.Config.LearningRate * (1 - float64(k)/float64(iterations))
		for pos := range nodes {
			m.trainWord(nodes, pos, sentVec, float32(alpha), false, rng)
		}
	}

	return sentVec, nil
}

// SentVectors runs SentVec over every line of path and returns the
// resulting vectors in file order. A line that is empty or entirely
// out of vocabulary yields a zero vector rather than aborting the
// whole batch; only an I/O failure on path itself is propagated.
func (m *Model) SentVectors(path string) ([]vecmath.Vector, error) {
	const op = "word2vec.SentVectors"
	f, err := os.Open(path)
	if err != nil {
		return nil, werrors.Wrap(werrors.IoError, op, err)
	}
	defer f.Close()

	var out []vecmath.Vector
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		v, err := m.SentVec(scanner.Text())
		if err != nil {
			v = vecmath.NewVector(m.Dimension())
		}
		out = append(out, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, werrors.Wrap(werrors.IoError, op, err)
	}
	return out, nil
}
