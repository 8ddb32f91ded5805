package word2vec

import (
	"bufio"
	"math"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/eske/multivec-go/corpus"
	"github.com/eske/multivec-go/vecmath"
	"github.com/eske/multivec-go/vocab"
	"github.com/eske/multivec-go/werrors"
)

// flushThreshold is the number of locally-counted words a worker
// accumulates before flushing into the shared progress counter and
// recomputing alpha, mirroring the teacher's 10000-word batching.
const flushThreshold = 10000

// Train (re)builds the model from trainFile and runs config.Iterations
// epochs of parallel SGD over it. When initialize is true, the
// vocabulary, Huffman tree, unigram table and weight matrices are
// rebuilt from scratch; otherwise the model must already be
// initialized (by a prior Train or by Load).
func (m *Model) Train(trainFile string, initialize bool) error {
	const op = "word2vec.Train"

	if initialize {
		if err := m.readVocab(trainFile); err != nil {
			return err
		}
	} else if m.VocabSize() == 0 {
		return werrors.New(werrors.InvalidInput, op, "model must be initialized before training")
	}

	m.wordsProcessed = 0

	chunks, err := corpus.Chunkify(trainFile, m.Config.Threads)
	if err != nil {
		return err
	}
	m.vocabulary.TrainingWords = chunks.Words
	m.vocabulary.TrainingLines = chunks.Lines

	if initialize {
		m.initWeights(chunks.Lines)
	}

	m.Config.log.WithFields(map[string]interface{}{
		"lines": chunks.Lines,
		"words": chunks.Words,
	}).Info("starting training")

	n := len(chunks.Offsets)
	g := new(errgroup.Group)
	for i := 0; i < n; i++ {
		chunkID := i
		g.Go(func() error {
			return m.trainChunk(trainFile, chunks, chunkID)
		})
	}
	return g.Wait()
}

// readVocab scans trainFile, builds a fresh vocabulary by count,
// prunes it by Config.MinCount, and builds the Huffman tree and
// unigram table over the survivors.
func (m *Model) readVocab(trainFile string) error {
	const op = "word2vec.readVocab"

	f, err := os.Open(trainFile)
	if err != nil {
		return werrors.Wrap(werrors.IoError, op, err)
	}
	defer f.Close()

	v := vocab.New()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		for _, w := range strings.Fields(scanner.Text()) {
			v.AddWord(w)
		}
	}
	if err := scanner.Err(); err != nil {
		return werrors.Wrap(werrors.IoError, op, err)
	}

	v.ReduceVocab(m.Config.MinCount)
	if v.Size() < 2 {
		return werrors.New(werrors.InvalidInput, op, "vocabulary has fewer than 2 surviving terms")
	}

	if _, err := vocab.Build(v); err != nil {
		return err
	}

	m.vocabulary = v
	m.unigram = vocab.BuildUnigramTable(v)
	return nil
}

// trainChunk runs Config.Iterations epochs over the byte range
// assigned to chunkID, reseeking to the chunk's start offset each
// epoch as the teacher's trainChunk does.
func (m *Model) trainChunk(trainFile string, chunks *corpus.Chunks, chunkID int) error {
	const op = "word2vec.trainChunk"

	f, err := os.Open(trainFile)
	if err != nil {
		return werrors.Wrap(werrors.IoError, op, err)
	}
	defer f.Close()

	startingAlpha := m.Config.LearningRate
	alpha := startingAlpha
	maxIterations := m.Config.Iterations
	rng := vecmath.NewRNG(uint64(chunkID) + 1)

	var chunkEnd int64 = -1
	if chunkID < len(chunks.Offsets)-1 {
		chunkEnd = chunks.Offsets[chunkID+1]
	}

	for k := 0; k < maxIterations; k++ {
		chunkStart := chunks.Offsets[chunkID]
		if _, err := f.Seek(chunkStart, 0); err != nil {
			return werrors.Wrap(werrors.IoError, op, err)
		}
		reader := bufio.NewReader(f)

		wordCount := 0
		sentID := int(int64(chunkID) * (chunks.Lines / int64(len(chunks.Offsets))))
		pos := chunkStart

		for {
			line, readErr := readLine(reader)
			if line == "" && readErr != nil {
				break
			}
			pos += int64(len(line)) + 1

			var sentVec vecmath.Vector
			if m.Config.SentVector && sentID < m.sentWeights.Rows() {
				sentVec = m.sentWeights.Row(sentID)
			}

			n, trainErr := m.trainSentence(line, sentVec, float32(alpha), rng)
			if trainErr != nil {
				return trainErr
			}
			wordCount += n
			sentID++

			if wordCount >= flushThreshold {
				m.progressMu.Lock()
				m.wordsProcessed += int64(wordCount)
				wordCount = 0
				alpha = startingAlpha * (1 - float64(m.wordsProcessed)/float64(int64(maxIterations)*chunks.Words))
				if alpha < startingAlpha*0.0001 {
					alpha = startingAlpha * 0.0001
				}
				m.alpha = alpha
				m.progressMu.Unlock()
			}

			if chunkEnd >= 0 && pos >= chunkEnd {
				break
			}
			if readErr != nil {
				break
			}
		}

		m.progressMu.Lock()
		m.wordsProcessed += int64(wordCount)
		m.progressMu.Unlock()
	}

	return nil
}

// readLine reads a single newline-terminated line (without the
// trailing newline) from r. It returns io.EOF (wrapped in err) once
// the stream is exhausted, along with any trailing partial line.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, err
}

// trainSentence tokenizes line, maps tokens to vocabulary nodes (OOV
// becomes UNK), optionally subsamples frequent words, and dispatches
// every surviving position to the training kernel. It returns the
// number of in-vocabulary words seen (including ones later dropped by
// subsampling), used for progress accounting.
func (m *Model) trainSentence(line string, sentVec vecmath.Vector, alpha float32, rng *vecmath.RNG) (int, error) {
	nodes := m.getNodes(line)

	words := 0
	for _, n := range nodes {
		if n.Index != vocab.UnkIndex {
			words++
		}
	}

	if m.Config.Subsampling > 0 {
		m.subsample(nodes, rng)
	}

	filtered := nodes[:0]
	for _, n := range nodes {
		if n.Index != vocab.UnkIndex {
			filtered = append(filtered, n)
		}
	}

	for pos := range filtered {
		m.trainWord(filtered, pos, sentVec, alpha, true, rng)
	}

	return words, nil
}

// unkNode is the sentinel used for tokens absent from the vocabulary.
var unkNode = &vocab.Node{Index: vocab.UnkIndex, Word: ""}

// getNodes maps every whitespace-separated token in sentence to its
// vocabulary node, substituting unkNode for unknown tokens.
func (m *Model) getNodes(sentence string) []*vocab.Node {
	fields := strings.Fields(sentence)
	nodes := make([]*vocab.Node, len(fields))
	for i, w := range fields {
		if n, ok := m.vocabulary.Lookup(w); ok {
			nodes[i] = n
		} else {
			nodes[i] = unkNode
		}
	}
	return nodes
}

// subsample replaces frequent-word nodes in place with unkNode,
// following word2vec's downsampling formula: a word with frequency f
// is kept with probability (1 + sqrt(f/s))*s/f, s = Config.Subsampling.
func (m *Model) subsample(nodes []*vocab.Node, rng *vecmath.RNG) {
	total := float64(m.vocabulary.WordCount())
	if total == 0 {
		return
	}
	s := m.Config.Subsampling

	for i, n := range nodes {
		if n.Index == vocab.UnkIndex {
			continue
		}
		f := float64(n.Count) / total
		if f <= 0 {
			continue
		}
		p := 1 - (1+math.Sqrt(f/s))*s/f
		if p >= float64(rng.Float32()) {
			nodes[i] = unkNode
		}
	}
}
