package bilingual

import (
	"math"
	"testing"

	"github.com/eske/multivec-go/word2vec"
)

func TestLearnMappingRecoversIdentity(t *testing.T) {
	src := newTestModel(t, []string{"one", "two", "three", "four"}, [][]float32{
		{1, 0},
		{0, 1},
		{0.7, 0.7},
		{-1, 0.2},
	})
	trg := newTestModel(t, []string{"un", "deux", "trois", "quatre"}, [][]float32{
		{1, 0},
		{0, 1},
		{0.7, 0.7},
		{-1, 0.2},
	})

	m := New(src, trg, testConfig(t, 1))
	dict := []Pair{
		{Source: "one", Target: "un"},
		{Source: "two", Target: "deux"},
		{Source: "three", Target: "trois"},
		{Source: "four", Target: "quatre"},
	}
	if err := m.LearnMapping(dict); err != nil {
		t.Fatalf("LearnMapping() error = %v", err)
	}
	if !m.HasMapping() {
		t.Fatalf("HasMapping() = false after a successful fit")
	}

	srcVec, err := src.WordVec(mustVocabIndex(t, src, "one"), word2vec.PolicyInput)
	if err != nil {
		t.Fatalf("WordVec() error = %v", err)
	}
	mapped, err := m.Map(srcVec)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	for i, v := range mapped {
		if math.Abs(float64(v-srcVec[i])) > 0.2 {
			t.Errorf("mapped[%d] = %v, want close to %v (identity mapping)", i, v, srcVec[i])
		}
	}
}

func mustVocabIndex(t *testing.T, m *word2vec.Model, w string) int {
	t.Helper()
	idx, ok := m.VocabIndex(w)
	if !ok {
		t.Fatalf("word %q not found", w)
	}
	return idx
}

func TestLearnMappingFailsWithNoResolvablePairs(t *testing.T) {
	src := newTestModel(t, []string{"one"}, [][]float32{{1, 0}})
	trg := newTestModel(t, []string{"un"}, [][]float32{{1, 0}})
	m := New(src, trg, testConfig(t, 1))

	err := m.LearnMapping([]Pair{{Source: "missing", Target: "absent"}})
	if err == nil {
		t.Fatalf("expected an error when no dictionary pair resolves")
	}
}

func TestMapFailsBeforeLearnMapping(t *testing.T) {
	src := newTestModel(t, []string{"one"}, [][]float32{{1, 0}})
	trg := newTestModel(t, []string{"un"}, [][]float32{{1, 0}})
	m := New(src, trg, testConfig(t, 1))

	if _, err := m.Map([]float32{1, 0}); err == nil {
		t.Errorf("Map() before LearnMapping(): expected an error, got nil")
	}
}
