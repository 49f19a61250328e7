// Package skills detects known skills in resume text by case-insensitive
// substring matching against a fixed vocabulary.
package skills

import "strings"

// Entry pairs a canonical skill name with its lowercase match pattern.
type Entry struct {
	Name    string
	Pattern string
}

// Vocabulary is an ordered list of recognized skills. It is built once at
// process start and only read afterwards, so concurrent requests share it
// without synchronization.
type Vocabulary []Entry

// DefaultVocabulary returns the built-in skill list.
func DefaultVocabulary() Vocabulary {
	names := []string{
		"Python", "Java", "C++", "JavaScript", "React", "Node", "SQL",
		"ML", "AI", "Data", "HTML", "CSS", "Django", "Flask", "MongoDB",
		"AWS", "DevOps", "Linux", "TypeScript", "Angular", "NLP",
		"Cloud", "Docker", "Kubernetes", "Excel", "Communication",
	}
	vocab := make(Vocabulary, 0, len(names))
	for _, name := range names {
		vocab = append(vocab, Entry{Name: name, Pattern: strings.ToLower(name)})
	}
	return vocab
}

// Detect returns the vocabulary entries whose pattern occurs in text. The
// result preserves vocabulary order, not text order, and holds no duplicates.
// Empty text yields an empty result.
func Detect(text string, vocab Vocabulary) []string {
	found := make([]string, 0, len(vocab))
	if text == "" {
		return found
	}
	lower := strings.ToLower(text)
	for _, entry := range vocab {
		if strings.Contains(lower, entry.Pattern) {
			found = append(found, entry.Name)
		}
	}
	return found
}
