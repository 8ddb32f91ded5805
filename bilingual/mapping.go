package bilingual

import (
	"gonum.org/v1/gonum/mat"

	"github.com/eske/multivec-go/vecmath"
	"github.com/eske/multivec-go/werrors"
	"github.com/eske/multivec-go/word2vec"
)

const (
	startingPatience  = 10
	mappingEpsilon    = 1e-4
	initialAlpha      = 0.01
	minAlpha          = 1e-10
	mappingRandomSeed = 7
)

// dictIndex is a resolved (source index, target index) pair: the
// vocabulary position of the two terms in a Pair, once both are
// confirmed present.
type dictIndex struct {
	src, trg int
}

// LearnMapping fits the D_trg x D_src linear map W minimizing the mean
// squared error of W*src_input[i] - trg_input[j] over every pair in
// dict that resolves in both vocabularies, using plain per-sample SGD
// with patience-based learning-rate annealing. It overwrites any
// mapping fit by a previous call.
func (m *Model) LearnMapping(dict []Pair) error {
	const op = "bilingual.LearnMapping"

	indices := make([]dictIndex, 0, len(dict))
	for _, p := range dict {
		srcIdx, ok := m.src.VocabIndex(p.Source)
		if !ok {
			continue
		}
		trgIdx, ok := m.trg.VocabIndex(p.Target)
		if !ok {
			continue
		}
		indices = append(indices, dictIndex{src: srcIdx, trg: trgIdx})
	}
	if len(indices) == 0 {
		return werrors.New(werrors.InvalidInput, op, "no dictionary pair resolves in both vocabularies")
	}

	srcDim := m.src.Dimension()
	trgDim := m.trg.Dimension()
	mapping := mat.NewDense(trgDim, srcDim, nil)

	x := make([]vecmath.Vector, len(indices))
	z := make([]vecmath.Vector, len(indices))
	for i, d := range indices {
		xi, err := m.src.WordVec(d.src, word2vec.PolicyInput)
		if err != nil {
			return err
		}
		zi, err := m.trg.WordVec(d.trg, word2vec.PolicyInput)
		if err != nil {
			return err
		}
		x[i], z[i] = xi, zi
	}

	rng := vecmath.NewRNG(mappingRandomSeed)
	order := make([]int, len(indices))
	for i := range order {
		order[i] = i
	}

	y := make([]float64, trgDim)
	e := make([]float64, trgDim)

	alpha := initialAlpha
	patience := startingPatience
	bestLoss := float64(-1)
	prevBestLoss := float64(-1)

	for alpha > minAlpha {
		shuffle(order, rng)
		var loss float64

		for _, idx := range order {
			xi, zi := x[idx], z[idx]
			for i := 0; i < trgDim; i++ {
				var sum float64
				for j := 0; j < srcDim; j++ {
					sum += mapping.At(i, j) * float64(xi[j])
				}
				y[i] = sum
				e[i] = sum - float64(zi[i])
				loss += e[i] * e[i] / float64(len(indices))
			}
			for i := 0; i < trgDim; i++ {
				for j := 0; j < srcDim; j++ {
					gradient := float64(xi[j]) * e[i] * 2
					mapping.Set(i, j, mapping.At(i, j)-alpha*gradient)
				}
			}
		}

		if bestLoss > 0 && loss >= bestLoss-mappingEpsilon {
			patience--
		}
		if bestLoss <= 0 {
			bestLoss = loss
		} else if loss < bestLoss {
			bestLoss = loss
		}

		if patience == 0 {
			if prevBestLoss > 0 && bestLoss >= prevBestLoss-mappingEpsilon {
				break
			}
			prevBestLoss = bestLoss
			alpha /= 2
			m.Config.log.WithFields(map[string]interface{}{
				"loss":  bestLoss,
				"alpha": alpha,
			}).Info("mapping fit annealed")
			patience = startingPatience
		}
	}

	m.mappingMu.Lock()
	m.mapping = mapping
	m.mappingMu.Unlock()
	return nil
}

// shuffle performs an in-place Fisher-Yates shuffle driven by rng, so
// a mapping fit run twice from the same seed is reproducible.
func shuffle(order []int, rng *vecmath.RNG) {
	for i := len(order) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
}

// Map applies the learned mapping to a source-space vector, returning
// its projection into target space. Fails InvalidInput if no mapping
// has been learned yet.
func (m *Model) Map(srcVec vecmath.Vector) (vecmath.Vector, error) {
	const op = "bilingual.Map"
	m.mappingMu.RLock()
	defer m.mappingMu.RUnlock()
	if m.mapping == nil {
		return nil, werrors.New(werrors.InvalidInput, op, "no mapping has been learned yet")
	}
	trgDim, srcDim := m.mapping.Dims()
	if len(srcVec) != srcDim {
		return nil, werrors.New(werrors.ShapeMismatch, op, "vector dimension does not match the mapping's source width")
	}
	out := vecmath.NewVector(trgDim)
	for i := 0; i < trgDim; i++ {
		var sum float64
		for j := 0; j < srcDim; j++ {
			sum += m.mapping.At(i, j) * float64(srcVec[j])
		}
		out[i] = float32(sum)
	}
	return out, nil
}
