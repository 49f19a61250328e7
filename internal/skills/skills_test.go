package skills

import (
	"reflect"
	"testing"
)

func TestDetectVocabularyOrder(t *testing.T) {
	vocab := Vocabulary{
		{Name: "Python", Pattern: "python"},
		{Name: "Java", Pattern: "java"},
	}
	// Text order is reversed; output must follow vocabulary order.
	got := Detect("JAVA and python", vocab)
	want := []string{"Python", "Java"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDetectCaseInsensitive(t *testing.T) {
	vocab := DefaultVocabulary()
	got := Detect("Expert in PYTHON, react and Sql.", vocab)
	want := []string{"Python", "React", "SQL"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDetectIdempotent(t *testing.T) {
	vocab := DefaultVocabulary()
	text := "Python python PYTHON, plus some Java and docker."
	first := Detect(text, vocab)
	second := Detect(text, vocab)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("detection not deterministic: %v vs %v", first, second)
	}
	seen := map[string]bool{}
	for _, s := range first {
		if seen[s] {
			t.Fatalf("duplicate skill %q in %v", s, first)
		}
		seen[s] = true
	}
}

func TestDetectEmptyText(t *testing.T) {
	got := Detect("", DefaultVocabulary())
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
