package word2vec

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCorpus(t *testing.T, lines []string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	if err := os.WriteFile(path, []byte(joinLines(lines)), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func joinLines(lines []string) string {
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}

func TestTrainPopulatesVocabularyAndWeights(t *testing.T) {
	path := writeCorpus(t, []string{
		"the cat sat on the mat",
		"the dog sat on the mat",
	})

	cfg, err := NewConfig(
		WithDimension(4), WithMinCount(1), WithWindowSize(2),
		WithNegative(5), WithHierarchicalSoftmax(true),
		WithIterations(1), WithThreads(1), WithSubsampling(0),
	)
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	m := NewModel(cfg)
	if err := m.Train(path, true); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	for _, w := range []string{"the", "cat", "dog", "sat", "on", "mat"} {
		if _, ok := m.vocabulary.Lookup(w); !ok {
			t.Errorf("vocabulary missing expected word %q", w)
		}
	}

	vec, err := m.WordVec(0, PolicyInput)
	if err != nil {
		t.Fatalf("WordVec() error = %v", err)
	}
	if len(vec) != 4 {
		t.Errorf("len(WordVec()) = %d, want 4", len(vec))
	}
}

func TestTrainIsDeterministicAcrossRuns(t *testing.T) {
	path := writeCorpus(t, []string{
		"the cat sat on the mat",
		"the dog sat on the mat",
		"a quick fox jumped over the lazy dog",
	})

	build := func() *Model {
		cfg, err := NewConfig(
			WithDimension(6), WithMinCount(1), WithWindowSize(2),
			WithNegative(3), WithHierarchicalSoftmax(true),
			WithIterations(2), WithThreads(1), WithSubsampling(0),
		)
		if err != nil {
			t.Fatalf("NewConfig() error = %v", err)
		}
		m := NewModel(cfg)
		if err := m.Train(path, true); err != nil {
			t.Fatalf("Train() error = %v", err)
		}
		return m
	}

	m1 := build()
	m2 := build()

	for _, w := range m1.Words() {
		v1, err := m1.WordVec(mustIndex(t, m1, w), PolicyInput)
		if err != nil {
			t.Fatalf("WordVec() error = %v", err)
		}
		v2, err := m2.WordVec(mustIndex(t, m2, w), PolicyInput)
		if err != nil {
			t.Fatalf("WordVec() error = %v", err)
		}
		for i := range v1 {
			if v1[i] != v2[i] {
				t.Fatalf("word %q: weights diverged between identically-seeded runs at dim %d: %v vs %v", w, i, v1[i], v2[i])
			}
		}
	}
}

func mustIndex(t *testing.T, m *Model, w string) int {
	t.Helper()
	idx, ok := m.vocabulary.IndexOf(w)
	if !ok {
		t.Fatalf("word %q not found", w)
	}
	return idx
}

func TestTrainRejectsUninitializedModel(t *testing.T) {
	path := writeCorpus(t, []string{"a b c"})
	cfg, err := NewConfig(WithMinCount(1))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	m := NewModel(cfg)
	if err := m.Train(path, false); err == nil {
		t.Errorf("Train(initialize=false) on a fresh model: expected error, got nil")
	}
}
