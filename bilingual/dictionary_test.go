package bilingual

import (
	"testing"

	"github.com/eske/multivec-go/word2vec"
)

func newTestModel(t *testing.T, words []string, vectors [][]float32) *word2vec.Model {
	t.Helper()
	cfg, err := word2vec.NewConfig(word2vec.WithDimension(len(vectors[0])), word2vec.WithNegative(5))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	m, err := word2vec.NewModelFromVectors(cfg, words, vectors)
	if err != nil {
		t.Fatalf("NewModelFromVectors() error = %v", err)
	}
	return m
}

func testConfig(t *testing.T, threads int) *Config {
	t.Helper()
	cfg, err := NewConfig(WithThreads(threads))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	return cfg
}

func TestDictionaryInductionFindsNearestNeighbor(t *testing.T) {
	src := newTestModel(t, []string{"chat", "chien"}, [][]float32{
		{1, 0},
		{0, 1},
	})
	trg := newTestModel(t, []string{"cat", "dog"}, [][]float32{
		{1, 0.05},
		{0.05, 1},
	})
	m := New(src, trg, testConfig(t, 1))

	dict, err := m.DictionaryInduction([]string{"chat", "chien"}, []string{"cat", "dog"}, word2vec.PolicyInput)
	if err != nil {
		t.Fatalf("DictionaryInduction() error = %v", err)
	}
	want := map[string]string{"chat": "cat", "chien": "dog"}
	if len(dict) != 2 {
		t.Fatalf("len(dict) = %d, want 2", len(dict))
	}
	for _, p := range dict {
		if want[p.Source] != p.Target {
			t.Errorf("pair %v: want target %q", p, want[p.Source])
		}
	}
}

func TestDictionaryInductionSameAcrossThreadCounts(t *testing.T) {
	src := newTestModel(t, []string{"a", "b", "c", "d"}, [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 0},
	})
	trg := newTestModel(t, []string{"x", "y", "z"}, [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})
	srcVocab := []string{"a", "b", "c", "d"}
	trgVocab := []string{"x", "y", "z"}

	single := New(src, trg, testConfig(t, 1))
	multi := New(src, trg, testConfig(t, 2))

	d1, err := single.DictionaryInduction(srcVocab, trgVocab, word2vec.PolicyInput)
	if err != nil {
		t.Fatalf("DictionaryInduction(threads=1) error = %v", err)
	}
	d2, err := multi.DictionaryInduction(srcVocab, trgVocab, word2vec.PolicyInput)
	if err != nil {
		t.Fatalf("DictionaryInduction(threads=2) error = %v", err)
	}

	if len(d1) != len(d2) {
		t.Fatalf("len(d1)=%d != len(d2)=%d", len(d1), len(d2))
	}
	for i := range d1 {
		if d1[i] != d2[i] {
			t.Errorf("pair %d differs across thread counts: %v vs %v", i, d1[i], d2[i])
		}
	}
}

func TestDictionaryInductionTopN(t *testing.T) {
	src := newTestModel(t, []string{"common", "rare"}, [][]float32{{1, 0}, {0, 1}})
	trg := newTestModel(t, []string{"frequent", "scarce"}, [][]float32{{1, 0}, {0, 1}})

	m := New(src, trg, testConfig(t, 1))
	dict, err := m.DictionaryInductionTopN(1, 1, word2vec.PolicyInput)
	if err != nil {
		t.Fatalf("DictionaryInductionTopN() error = %v", err)
	}
	if len(dict) != 1 || dict[0].Source != "common" || dict[0].Target != "frequent" {
		t.Errorf("DictionaryInductionTopN() = %v, want [{common frequent}]", dict)
	}
}

func TestDictionaryInductionSkipsZeroVector(t *testing.T) {
	src := newTestModel(t, []string{"zero", "live"}, [][]float32{{0, 0}, {1, 0}})
	trg := newTestModel(t, []string{"only"}, [][]float32{{1, 0}})
	m := New(src, trg, testConfig(t, 1))

	dict, err := m.DictionaryInduction([]string{"zero", "live"}, []string{"only"}, word2vec.PolicyInput)
	if err != nil {
		t.Fatalf("DictionaryInduction() error = %v", err)
	}
	if len(dict) != 1 || dict[0].Source != "live" {
		t.Errorf("DictionaryInduction() = %v, want exactly one pair for the non-zero term", dict)
	}
}
