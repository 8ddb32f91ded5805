package word2vec

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestSaveVectorsTextRoundTrip(t *testing.T) {
	m := newTestModel(t, []string{"cat", "dog", "car"}, [][]float32{
		{1, 0, 0.5, -0.5},
		{0, 1, 0.25, 0.75},
		{0.1, 0.2, 0.3, 0.4},
	})

	path := filepath.Join(t.TempDir(), "vectors.txt")
	if err := m.SaveVectors(path, PolicyInput, false); err != nil {
		t.Fatalf("SaveVectors() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		t.Fatalf("expected a header line")
	}
	header := strings.Fields(scanner.Text())
	if header[0] != "3" || header[1] != "4" {
		t.Fatalf("header = %v, want [3 4]", header)
	}

	seen := map[string][]float32{}
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		word := fields[0]
		vec := make([]float32, len(fields)-1)
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				t.Fatalf("ParseFloat(%q) error = %v", f, err)
			}
			vec[i] = float32(v)
		}
		seen[word] = vec
	}

	idx, _ := m.vocabulary.IndexOf("cat")
	want, _ := m.WordVec(idx, PolicyInput)
	got := seen["cat"]
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if absDiff(got[i], want[i]) > 1e-4 {
			t.Errorf("cat vector[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func absDiff(a, b float32) float32 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

func TestSaveLoadRoundTrip(t *testing.T) {
	corpusPath := writeCorpus(t, []string{
		"the cat sat on the mat",
		"the dog sat on the mat",
	})

	cfg, err := NewConfig(WithDimension(4), WithMinCount(1), WithNegative(5), WithIterations(1))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	m := NewModel(cfg)
	if err := m.Train(corpusPath, true); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	savePath := filepath.Join(t.TempDir(), "model.bin")
	if err := m.Save(savePath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := NewModel(cfg)
	if err := loaded.Load(savePath); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, w := range m.Words() {
		idx, ok := loaded.vocabulary.IndexOf(w)
		if !ok {
			t.Fatalf("loaded model missing word %q", w)
		}
		origIdx, _ := m.vocabulary.IndexOf(w)
		want, err := m.WordVec(origIdx, PolicyInput)
		if err != nil {
			t.Fatalf("WordVec() error = %v", err)
		}
		got, err := loaded.WordVec(idx, PolicyInput)
		if err != nil {
			t.Fatalf("WordVec() error = %v", err)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("word %q: loaded vector[%d] = %v, want %v (bit-exact)", w, i, got[i], want[i])
			}
		}
	}
}
