package word2vec

import (
	"github.com/eske/multivec-go/vecmath"
	"github.com/eske/multivec-go/vocab"
)

// trainWord dispatches to the CBOW, skip-gram or DBOW kernel for the
// token at nodes[pos], exactly as trainSentence calls it for every
// surviving position. sentVec is nil unless sentence vectors are
// enabled; update=false freezes the weight matrices (used by frozen
// inference).
func (m *Model) trainWord(nodes []*vocab.Node, pos int, sentVec vecmath.Vector, alpha float32, update bool, rng *vecmath.RNG) {
	switch {
	case m.Config.SkipGram && sentVec != nil:
		m.trainWordDBOW(nodes[pos], sentVec, alpha, update, rng)
	case m.Config.SkipGram:
		m.trainWordSkipGram(nodes, pos, alpha, update, rng)
	default:
		m.trainWordCBOW(nodes, pos, sentVec, alpha, update, rng)
	}
}

func (m *Model) trainWordCBOW(nodes []*vocab.Node, pos int, sentVec vecmath.Vector, alpha float32, update bool, rng *vecmath.RNG) {
	d := m.Dimension()
	hidden := vecmath.NewVector(d)
	curNode := nodes[pos]

	windowRadius := 1 + rng.Intn(m.Config.WindowSize)
	count := 0
	for p := pos - windowRadius; p <= pos+windowRadius; p++ {
		if p < 0 || p >= len(nodes) || p == pos {
			continue
		}
		m.lockInput()
		hidden.AddInPlace(m.inputWeights.Row(nodes[p].Index))
		m.unlockInput()
		count++
	}
	if sentVec != nil {
		m.lockSent()
		hidden.AddInPlace(sentVec)
		m.unlockSent()
		count++
	}
	if count == 0 {
		return
	}
	if m.Config.NoAverage {
		count = 1
	}
	hidden.ScaleInPlace(1 / float32(count))

	errVec := vecmath.NewVector(d)
	if m.Config.HierarchicalSoftmax {
		errVec.AddInPlace(m.hierarchicalUpdate(curNode, hidden, alpha, update))
	}
	if m.Config.Negative > 0 {
		errVec.AddInPlace(m.negSamplingUpdate(curNode, hidden, alpha, update, rng))
	}

	if update {
		for p := pos - windowRadius; p <= pos+windowRadius; p++ {
			if p < 0 || p >= len(nodes) || p == pos {
				continue
			}
			m.lockInput()
			m.inputWeights.Row(nodes[p].Index).AddScaledInPlace(errVec, 1/float32(count))
			m.unlockInput()
		}
	}
	if sentVec != nil {
		m.lockSent()
		sentVec.AddScaledInPlace(errVec, 1/float32(count))
		m.unlockSent()
	}
}

func (m *Model) trainWordDBOW(outputWord *vocab.Node, sentVec vecmath.Vector, alpha float32, update bool, rng *vecmath.RNG) {
	d := m.Dimension()
	errVec := vecmath.NewVector(d)
	m.lockSent()
	if m.Config.HierarchicalSoftmax {
		errVec.AddInPlace(m.hierarchicalUpdate(outputWord, sentVec, alpha, update))
	}
	if m.Config.Negative > 0 {
		errVec.AddInPlace(m.negSamplingUpdate(outputWord, sentVec, alpha, update, rng))
	}
	sentVec.AddInPlace(errVec)
	m.unlockSent()
}

func (m *Model) trainWordSkipGram(nodes []*vocab.Node, pos int, alpha float32, update bool, rng *vecmath.RNG) {
	inputWord := nodes[pos]
	windowRadius := 1 + rng.Intn(m.Config.WindowSize)

	for p := pos - windowRadius; p <= pos+windowRadius; p++ {
		if p == pos || p < 0 || p >= len(nodes) {
			continue
		}
		outputWord := nodes[p]

		m.lockInput()
		hidden := m.inputWeights.Row(inputWord.Index)
		errVec := vecmath.NewVector(m.Dimension())
		if m.Config.HierarchicalSoftmax {
			errVec.AddInPlace(m.hierarchicalUpdate(outputWord, hidden, alpha, update))
		}
		if m.Config.Negative > 0 {
			errVec.AddInPlace(m.negSamplingUpdate(outputWord, hidden, alpha, update, rng))
		}
		if update {
			hidden.AddInPlace(errVec)
		}
		m.unlockInput()
	}
}

// negSamplingUpdate runs the negative+1 label-1/label-0 update against
// output_weights and returns the accumulated error vector to add into
// the caller's hidden-side input. rng must be non-nil; it draws the
// negative samples.
func (m *Model) negSamplingUpdate(node *vocab.Node, hidden vecmath.Vector, alpha float32, update bool, rng *vecmath.RNG) vecmath.Vector {
	d := m.Dimension()
	temp := vecmath.NewVector(d)

	for i := 0; i < m.Config.Negative+1; i++ {
		var target *vocab.Node
		var label float32
		if i == 0 {
			target = node
			label = 1
		} else {
			target = m.sampleNegative(rng)
			if target == nil || target.Index == node.Index {
				continue
			}
			label = 0
		}

		m.lockOutput()
		row := m.outputWeights.Row(target.Index)
		x := hidden.Dot(row)

		var pred float32
		switch {
		case x >= float32(vecmath.MaxExp):
			pred = 1
		case x <= -float32(vecmath.MaxExp):
			pred = 0
		default:
			pred = vecmath.Sigmoid(x)
		}
		errScalar := alpha * (label - pred)

		temp.AddScaledInPlace(row, errScalar)
		if update {
			row.AddScaledInPlace(hidden, errScalar)
		}
		m.unlockOutput()
	}

	return temp
}

// hierarchicalUpdate walks node's Huffman path, updating
// output_weights_hs at each internal node and returning the
// accumulated error vector.
func (m *Model) hierarchicalUpdate(node *vocab.Node, hidden vecmath.Vector, alpha float32, update bool) vecmath.Vector {
	d := m.Dimension()
	temp := vecmath.NewVector(d)

	for j := 0; j < len(node.Code); j++ {
		parentIdx := node.Parents[j]

		m.lockOutputHS()
		row := m.outputWeightsHS.Row(parentIdx)
		x := hidden.Dot(row)
		if x <= -float32(vecmath.MaxExp) || x >= float32(vecmath.MaxExp) {
			m.unlockOutputHS()
			continue
		}
		pred := vecmath.Sigmoid(x)
		errScalar := -alpha * (pred - float32(node.Code[j]))

		temp.AddScaledInPlace(row, errScalar)
		if update {
			row.AddScaledInPlace(hidden, errScalar)
		}
		m.unlockOutputHS()
	}

	return temp
}

// sampleNegative draws a node from the unigram table using rng; rng
// is required whenever negative sampling runs.
func (m *Model) sampleNegative(rng *vecmath.RNG) *vocab.Node {
	idx := m.unigram.Sample(func(n int) int { return rng.Intn(n) })
	if idx == vocab.UnkIndex {
		return nil
	}
	return m.vocabulary.Nodes()[idx]
}
