package word2vec

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/unixpickle/serializer"

	"github.com/eske/multivec-go/vecmath"
	"github.com/eske/multivec-go/vocab"
	"github.com/eske/multivec-go/werrors"
)

func init() {
	serializer.RegisterTypedDeserializer(vocabSnapshot{}.SerializerType(), deserializeVocabSnapshot)
}

// vocabSnapshot is the JSON-serializable projection of a Vocabulary
// plus Huffman tree used by Model.Save/Load: every leaf's word,
// count, code and parents, in the order Nodes() returns them (which
// is also the index order).
type vocabSnapshot struct {
	Words         []string `json:"words"`
	Counts        []int64  `json:"counts"`
	Codes         [][]byte `json:"codes"`
	Parents       [][]int  `json:"parents"`
	TrainingWords int64    `json:"training_words"`
	TrainingLines int64    `json:"training_lines"`
}

func (vocabSnapshot) SerializerType() string {
	return "github.com/eske/multivec-go/word2vec.vocabSnapshot"
}

func (v vocabSnapshot) Serialize() ([]byte, error) {
	return json.Marshal(v)
}

func deserializeVocabSnapshot(d []byte) (vocabSnapshot, error) {
	var v vocabSnapshot
	if err := json.Unmarshal(d, &v); err != nil {
		return vocabSnapshot{}, err
	}
	return v, nil
}

func snapshotVocab(v *vocab.Vocabulary) vocabSnapshot {
	nodes := v.Nodes()
	snap := vocabSnapshot{
		Words:         make([]string, len(nodes)),
		Counts:        make([]int64, len(nodes)),
		Codes:         make([][]byte, len(nodes)),
		Parents:       make([][]int, len(nodes)),
		TrainingWords: v.TrainingWords,
		TrainingLines: v.TrainingLines,
	}
	for i, n := range nodes {
		snap.Words[i] = n.Word
		snap.Counts[i] = n.Count
		snap.Codes[i] = n.Code
		snap.Parents[i] = n.Parents
	}
	return snap
}

// rebuildVocab reconstructs a Vocabulary and its Huffman-coded leaves
// directly from a snapshot, without re-running Build (the codes and
// parents are restored verbatim, so construction-order ties from the
// original build are preserved exactly).
func rebuildVocab(snap vocabSnapshot) *vocab.Vocabulary {
	v := vocab.New()
	for i, w := range snap.Words {
		n := v.AddWord(w)
		n.Count = snap.Counts[i]
		n.Code = snap.Codes[i]
		n.Parents = snap.Parents[i]
	}
	v.TrainingWords = snap.TrainingWords
	v.TrainingLines = snap.TrainingLines
	return v
}

// Save persists the complete model (vocabulary with Huffman codes,
// all weight matrices, and training counters) to path. Load rebuilds
// the unigram table from the restored counts.
func (m *Model) Save(path string) error {
	const op = "word2vec.Save"

	data, err := serializer.SerializeAny(
		snapshotVocab(m.vocabulary),
		m.Dimension(),
		m.Config.Negative,
		m.Config.HierarchicalSoftmax,
		m.Config.SentVector,
		serializer.Bytes(matrixToBytes(m.inputWeights)),
		serializer.Bytes(matrixToBytes(m.outputWeights)),
		serializer.Bytes(matrixToBytes(m.outputWeightsHS)),
		serializer.Bytes(matrixToBytes(m.sentWeights)),
	)
	if err != nil {
		return werrors.Wrap(werrors.IoError, op, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return werrors.Wrap(werrors.IoError, op, err)
	}
	return nil
}

// Load populates m (which must already carry a Config) from a file
// written by Save.
func (m *Model) Load(path string) error {
	const op = "word2vec.Load"

	data, err := os.ReadFile(path)
	if err != nil {
		return werrors.Wrap(werrors.IoError, op, err)
	}

	var snap vocabSnapshot
	var dimension, negative int
	var hs, sentVector bool
	var inBytes, outBytes, outHSBytes, sentBytes serializer.Bytes

	if err := serializer.DeserializeAny(data, &snap, &dimension, &negative, &hs, &sentVector,
		&inBytes, &outBytes, &outHSBytes, &sentBytes); err != nil {
		return werrors.Wrap(werrors.IoError, op, err)
	}

	m.vocabulary = rebuildVocab(snap)
	v := m.vocabulary
	internalCount := v.Size() - 1
	if internalCount < 0 {
		internalCount = 0
	}
	m.unigram = vocab.BuildUnigramTable(v)

	m.inputWeights = bytesToMatrix([]byte(inBytes), v.Size(), dimension)
	if negative > 0 {
		m.outputWeights = bytesToMatrix([]byte(outBytes), v.Size(), dimension)
	}
	if hs {
		m.outputWeightsHS = bytesToMatrix([]byte(outHSBytes), internalCount, dimension)
	}
	if sentVector {
		m.sentWeights = bytesToMatrix([]byte(sentBytes), int(v.TrainingLines), dimension)
	}
	return nil
}

// matrixToBytes packs a Matrix as little-endian float32 values, row
// major. A nil matrix packs to an empty slice.
func matrixToBytes(mat *vecmath.Matrix) []byte {
	if mat == nil {
		return nil
	}
	n := mat.Rows() * mat.Dim()
	buf := make([]byte, n*4)
	for i := 0; i < mat.Rows(); i++ {
		row := mat.Row(i)
		for j, x := range row {
			binary.LittleEndian.PutUint32(buf[(i*mat.Dim()+j)*4:], math.Float32bits(x))
		}
	}
	return buf
}

func bytesToMatrix(buf []byte, rows, dim int) *vecmath.Matrix {
	if rows <= 0 || dim <= 0 || len(buf) == 0 {
		return nil
	}
	mat := vecmath.NewMatrix(rows, dim)
	for i := 0; i < rows; i++ {
		row := mat.Row(i)
		for j := range row {
			off := (i*dim + j) * 4
			row[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
		}
	}
	return mat
}

// SaveVectors writes word vectors in the word2vec-compatible text
// format: a "V D" header line, then one "word v0 v1 ... v(D-1)" line
// per term in sorted-vocabulary order.
func (m *Model) SaveVectors(path string, policy VectorPolicy, norm bool) error {
	const op = "word2vec.SaveVectors"
	f, err := os.Create(path)
	if err != nil {
		return werrors.Wrap(werrors.IoError, op, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	sorted := m.vocabulary.SortedVocab()
	fmt.Fprintf(w, "%d %d\n", len(sorted), m.vectorWidth(policy))

	for _, node := range sorted {
		vec, err := m.WordVec(node.Index, policy)
		if err != nil {
			return err
		}
		if norm {
			vec = vec.Normalized()
		}
		w.WriteString(node.Word)
		for _, x := range vec {
			fmt.Fprintf(w, " %g", x)
		}
		w.WriteString("\n")
	}
	return flushWriter(w, op)
}

// SaveVectorsBin writes word vectors in the word2vec-compatible
// binary format: a "V D" text header, then for each term the UTF-8
// word bytes, a space, D little-endian float32 values, and a trailing
// newline (preserved for compatibility with the reference behavior
// even though some readers expect none).
func (m *Model) SaveVectorsBin(path string, policy VectorPolicy, norm bool) error {
	const op = "word2vec.SaveVectorsBin"
	f, err := os.Create(path)
	if err != nil {
		return werrors.Wrap(werrors.IoError, op, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	sorted := m.vocabulary.SortedVocab()
	fmt.Fprintf(w, "%d %d\n", len(sorted), m.vectorWidth(policy))

	var numBuf [4]byte
	for _, node := range sorted {
		vec, err := m.WordVec(node.Index, policy)
		if err != nil {
			return err
		}
		if norm {
			vec = vec.Normalized()
		}
		w.WriteString(node.Word)
		w.WriteByte(' ')
		for _, x := range vec {
			binary.LittleEndian.PutUint32(numBuf[:], math.Float32bits(x))
			w.Write(numBuf[:])
		}
		w.WriteByte('\n')
	}
	return flushWriter(w, op)
}

// SaveSentVectors writes one line per sent_weights row, space
// separated floats.
func (m *Model) SaveSentVectors(path string, norm bool) error {
	const op = "word2vec.SaveSentVectors"
	if m.sentWeights == nil {
		return werrors.New(werrors.InvalidInput, op, "model was not trained with sentence vectors")
	}
	f, err := os.Create(path)
	if err != nil {
		return werrors.Wrap(werrors.IoError, op, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := 0; i < m.sentWeights.Rows(); i++ {
		row := vecmath.Vector(append(vecmath.Vector{}, m.sentWeights.Row(i)...))
		if norm {
			row = row.Normalized()
		}
		for j, x := range row {
			if j > 0 {
				w.WriteByte(' ')
			}
			fmt.Fprintf(w, "%g", x)
		}
		w.WriteByte('\n')
	}
	return flushWriter(w, op)
}

func (m *Model) vectorWidth(policy VectorPolicy) int {
	if policy == PolicyConcat {
		return m.Dimension() * 2
	}
	return m.Dimension()
}

func flushWriter(w *bufio.Writer, op string) error {
	if err := w.Flush(); err != nil {
		return werrors.Wrap(werrors.IoError, op, err)
	}
	return nil
}
