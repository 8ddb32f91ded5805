package word2vec

import (
	"sync"

	"github.com/eske/multivec-go/vecmath"
	"github.com/eske/multivec-go/vocab"
)

// VectorPolicy selects which subset of a term's weights make up its
// exposed vector.
type VectorPolicy int

const (
	// PolicyInput exposes only input_weights.
	PolicyInput VectorPolicy = 0
	// PolicyConcat exposes the concatenation of input and output weights (length 2D).
	PolicyConcat VectorPolicy = 1
	// PolicySum exposes the element-wise sum of input and output weights.
	PolicySum VectorPolicy = 2
	// PolicyOutput exposes only output_weights.
	PolicyOutput VectorPolicy = 3
)

// Model is a monolingual embedding model: a vocabulary with its
// Huffman tree, a unigram sampling table, and the weight matrices
// mutated by training.
//
// Query methods treat the weight matrices as read-only. The model
// exclusively owns everything it allocates; there is no shared
// ownership with other models (bilingual alignment holds two Models
// plus its own mapping matrix, not references into either model's
// internals).
type Model struct {
	Config *Config

	vocabulary *vocab.Vocabulary
	unigram    *vocab.UnigramTable

	inputWeights    *vecmath.Matrix
	outputWeights   *vecmath.Matrix // negative sampling, rows = vocab size
	outputWeightsHS *vecmath.Matrix // hierarchical softmax, rows = V-1 internal nodes
	sentWeights     *vecmath.Matrix // present iff Config.SentVector

	// wordsProcessed and alpha are updated by the progress lock during
	// training and read by it to compute the next learning rate.
	progressMu     sync.Mutex
	wordsProcessed int64
	alpha          float64

	// Held only when Config.SyncSGD is set: one mutex per weight
	// matrix, coarse-grained (per-matrix, not per-row).
	inputMu    sync.Mutex
	outputMu   sync.Mutex
	outputHSMu sync.Mutex
	sentMu     sync.Mutex
}

// NewModel builds an empty model bound to cfg. Call Train with
// initialize=true to populate its vocabulary and weights.
func NewModel(cfg *Config) *Model {
	return &Model{Config: cfg, vocabulary: vocab.New()}
}

// Dimension returns the model's embedding width.
func (m *Model) Dimension() int { return m.Config.Dimension }

// VocabSize returns the number of distinct vocabulary terms.
func (m *Model) VocabSize() int { return m.vocabulary.Size() }

// Words returns every vocabulary term.
func (m *Model) Words() []string { return m.vocabulary.Words() }

// VocabIndex returns the vocabulary index of w, for callers (such as
// bilingual alignment) that need to cross-reference two models'
// vocabularies without going through the query layer's OOV handling.
func (m *Model) VocabIndex(w string) (int, bool) { return m.vocabulary.IndexOf(w) }

// SortedWords returns vocabulary terms ordered by (count desc, word
// asc), the order dictionary induction's top-N selection uses.
func (m *Model) SortedWords() []string {
	nodes := m.vocabulary.SortedVocab()
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Word
	}
	return out
}

// WordCount pairs a vocabulary term with its surviving occurrence
// count, as returned by WordCounts.
type WordCount struct {
	Word  string
	Count int64
}

// WordCounts returns every vocabulary term with its count, ordered by
// (count desc, word asc), for inspecting a trained or loaded
// vocabulary without reaching into persistence internals.
func (m *Model) WordCounts() []WordCount {
	nodes := m.vocabulary.SortedVocab()
	out := make([]WordCount, len(nodes))
	for i, n := range nodes {
		out[i] = WordCount{Word: n.Word, Count: n.Count}
	}
	return out
}

// initWeights allocates input_weights, output_weights/output_weights_hs
// as configured, and sent_weights if sentence vectors are enabled,
// matching the teacher's InitNet but with float32 uniform init bounded
// by the vocabulary's current dimension.
func (m *Model) initWeights(trainingLines int64) {
	v := m.VocabSize()
	d := m.Dimension()

	m.inputWeights = vecmath.NewMatrix(v, d)
	rng := vecmath.NewRNG(1)
	for i := 0; i < v; i++ {
		row := m.inputWeights.Row(i)
		for j := 0; j < d; j++ {
			row[j] = rng.UniformSigned(d)
		}
	}

	if m.Config.Negative > 0 {
		m.outputWeights = vecmath.NewMatrix(v, d)
	}
	if m.Config.HierarchicalSoftmax {
		internalCount := v - 1
		if internalCount < 0 {
			internalCount = 0
		}
		m.outputWeightsHS = vecmath.NewMatrix(internalCount, d)
	}
	if m.Config.SentVector {
		m.sentWeights = vecmath.NewMatrix(int(trainingLines), d)
		for i := 0; i < int(trainingLines); i++ {
			row := m.sentWeights.Row(i)
			for j := 0; j < d; j++ {
				row[j] = rng.UniformSigned(d)
			}
		}
	}
}

// lockInput, lockOutput, lockOutputHS and lockSent acquire the
// per-matrix mutex when sync mode is on; they are no-ops in async
// mode, where concurrent writers race by design (Hogwild).
func (m *Model) lockInput() {
	if m.Config.SyncSGD {
		m.inputMu.Lock()
	}
}
func (m *Model) unlockInput() {
	if m.Config.SyncSGD {
		m.inputMu.Unlock()
	}
}
func (m *Model) lockOutput() {
	if m.Config.SyncSGD {
		m.outputMu.Lock()
	}
}
func (m *Model) unlockOutput() {
	if m.Config.SyncSGD {
		m.outputMu.Unlock()
	}
}
func (m *Model) lockOutputHS() {
	if m.Config.SyncSGD {
		m.outputHSMu.Lock()
	}
}
func (m *Model) unlockOutputHS() {
	if m.Config.SyncSGD {
		m.outputHSMu.Unlock()
	}
}
func (m *Model) lockSent() {
	if m.Config.SyncSGD {
		m.sentMu.Lock()
	}
}
func (m *Model) unlockSent() {
	if m.Config.SyncSGD {
		m.sentMu.Unlock()
	}
}
