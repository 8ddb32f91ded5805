package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempCorpus(t *testing.T, lines []string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()
	for _, l := range lines {
		if _, err := f.WriteString(l + "\n"); err != nil {
			t.Fatalf("WriteString() error = %v", err)
		}
	}
	return path
}

func TestChunkifyCountsLinesAndWords(t *testing.T) {
	path := writeTempCorpus(t, []string{
		"the quick brown fox",
		"jumps over the lazy dog",
		"hello world",
		"a b c d e",
	})

	chunks, err := Chunkify(path, 2)
	if err != nil {
		t.Fatalf("Chunkify() error = %v", err)
	}
	if chunks.Lines != 4 {
		t.Errorf("Lines = %d, want 4", chunks.Lines)
	}
	if chunks.Words != 4+5+2+5 {
		t.Errorf("Words = %d, want %d", chunks.Words, 4+5+2+5)
	}
	if len(chunks.Offsets) != 2 {
		t.Errorf("len(Offsets) = %d, want 2", len(chunks.Offsets))
	}
	if chunks.Offsets[0] != 0 {
		t.Errorf("Offsets[0] = %d, want 0", chunks.Offsets[0])
	}
}

func TestChunkifyEmptyFile(t *testing.T) {
	path := writeTempCorpus(t, nil)
	if _, err := Chunkify(path, 4); err == nil {
		t.Errorf("Chunkify() on empty file: expected error, got nil")
	}
}

func TestChunkifyMoreWorkersThanLines(t *testing.T) {
	path := writeTempCorpus(t, []string{"only one line"})
	chunks, err := Chunkify(path, 4)
	if err != nil {
		t.Fatalf("Chunkify() error = %v", err)
	}
	if len(chunks.Offsets) != 1 {
		t.Errorf("len(Offsets) = %d, want 1 when there are fewer lines than workers", len(chunks.Offsets))
	}
}
