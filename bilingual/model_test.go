package bilingual

import (
	"testing"

	"github.com/eske/multivec-go/werrors"
	"github.com/eske/multivec-go/word2vec"
)

func twoLangModels(t *testing.T) (*word2vec.Model, *word2vec.Model) {
	src := newTestModel(t, []string{"chat", "chien"}, [][]float32{
		{1, 0},
		{0, 1},
	})
	trg := newTestModel(t, []string{"cat", "dog"}, [][]float32{
		{1, 0},
		{0, 1},
	})
	return src, trg
}

func TestSimilarityExactMatchIsOne(t *testing.T) {
	src, trg := twoLangModels(t)
	m := New(src, trg, testConfig(t, 1))

	sim, err := m.Similarity("chat", "cat", word2vec.PolicyInput)
	if err != nil {
		t.Fatalf("Similarity() error = %v", err)
	}
	if sim != 1 {
		t.Errorf("Similarity(chat, cat) = %v, want 1", sim)
	}
}

func TestSimilarityOOVReturnsZero(t *testing.T) {
	src, trg := twoLangModels(t)
	m := New(src, trg, testConfig(t, 1))

	sim, err := m.Similarity("nope", "cat", word2vec.PolicyInput)
	if err != nil {
		t.Fatalf("Similarity() error = %v", err)
	}
	if sim != 0 {
		t.Errorf("Similarity() with OOV source = %v, want 0", sim)
	}
}

func TestDistanceIsNotHalved(t *testing.T) {
	src, trg := twoLangModels(t)
	m := New(src, trg, testConfig(t, 1))

	dist, err := m.Distance("chat", "dog", word2vec.PolicyInput)
	if err != nil {
		t.Fatalf("Distance() error = %v", err)
	}
	// similarity(chat, dog) = 0, so distance should be 1-0=1, not (1-0)/2.
	if dist != 1 {
		t.Errorf("Distance(chat, dog) = %v, want 1 (bilingual distance is 1-sim, not halved)", dist)
	}
}

func TestTargetClosestFailsOnOOVSource(t *testing.T) {
	src, trg := twoLangModels(t)
	m := New(src, trg, testConfig(t, 1))

	if _, err := m.TargetClosest("nope", 1, word2vec.PolicyInput); !werrors.Is(err, werrors.OOV) {
		t.Errorf("TargetClosest() on OOV source word: got err = %v, want OOV", err)
	}
}

func TestTargetClosestFindsAlignedTerm(t *testing.T) {
	src, trg := twoLangModels(t)
	m := New(src, trg, testConfig(t, 1))

	results, err := m.TargetClosest("chat", 1, word2vec.PolicyInput)
	if err != nil {
		t.Fatalf("TargetClosest() error = %v", err)
	}
	if len(results) != 1 || results[0].Word != "cat" {
		t.Errorf("TargetClosest(chat) = %v, want [cat]", results)
	}
}

func TestSourceClosestFindsAlignedTerm(t *testing.T) {
	src, trg := twoLangModels(t)
	m := New(src, trg, testConfig(t, 1))

	results, err := m.SourceClosest("dog", 1, word2vec.PolicyInput)
	if err != nil {
		t.Fatalf("SourceClosest() error = %v", err)
	}
	if len(results) != 1 || results[0].Word != "chien" {
		t.Errorf("SourceClosest(dog) = %v, want [chien]", results)
	}
}
