package bilingual

import (
	"testing"

	"github.com/eske/multivec-go/werrors"
	"github.com/eske/multivec-go/word2vec"
)

func TestSimilarityNgramsShapeMismatch(t *testing.T) {
	src, trg := twoLangModels(t)
	m := New(src, trg, testConfig(t, 1))

	_, err := m.SimilarityNgrams([]string{"chat", "chien"}, []string{"cat"}, word2vec.PolicyInput)
	if !werrors.Is(err, werrors.ShapeMismatch) {
		t.Errorf("SimilarityNgrams() with mismatched lengths: got err = %v, want ShapeMismatch", err)
	}
}

func TestSimilarityNgramsAveragesKnownPairs(t *testing.T) {
	src, trg := twoLangModels(t)
	m := New(src, trg, testConfig(t, 1))

	got, err := m.SimilarityNgrams([]string{"chat", "chien"}, []string{"cat", "dog"}, word2vec.PolicyInput)
	if err != nil {
		t.Fatalf("SimilarityNgrams() error = %v", err)
	}
	if got != 1 {
		t.Errorf("SimilarityNgrams() = %v, want 1 (both aligned pairs are exact matches)", got)
	}
}

func TestSimilarityNgramsAllOOV(t *testing.T) {
	src, trg := twoLangModels(t)
	m := New(src, trg, testConfig(t, 1))

	_, err := m.SimilarityNgrams([]string{"nope"}, []string{"absent"}, word2vec.PolicyInput)
	if !werrors.Is(err, werrors.AllOOV) {
		t.Errorf("SimilarityNgrams() with no known pair: got err = %v, want AllOOV", err)
	}
}

func TestSimilaritySentenceAllOOVReturnsZero(t *testing.T) {
	src, trg := twoLangModels(t)
	m := New(src, trg, testConfig(t, 1))

	got, err := m.SimilaritySentence([]string{"nope"}, []string{"absent"}, word2vec.PolicyInput)
	if err != nil {
		t.Fatalf("SimilaritySentence() error = %v", err)
	}
	if got != 0 {
		t.Errorf("SimilaritySentence() with no known terms = %v, want 0", got)
	}
}

func TestSimilaritySentenceSyntaxWeightsKnownTags(t *testing.T) {
	src, trg := twoLangModels(t)
	m := New(src, trg, testConfig(t, 1))

	got, err := m.SimilaritySentenceSyntax(
		[]string{"chat"}, []string{"cat"},
		[]string{"NOUN"}, []string{"NOUN"},
		[]float64{1}, []float64{1},
		0.5, word2vec.PolicyInput,
	)
	if err != nil {
		t.Fatalf("SimilaritySentenceSyntax() error = %v", err)
	}
	if got != 1 {
		t.Errorf("SimilaritySentenceSyntax() = %v, want 1 (identical aligned vectors)", got)
	}
}
