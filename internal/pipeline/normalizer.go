package pipeline

import (
	"regexp"
	"strings"
)

// NormalizedText is the output of the normalization stage: cleaned
// sentences in document order plus basic counts.
type NormalizedText struct {
	Sentences     []string `json:"sentences"`
	CharCount     int      `json:"char_count"`
	WordCount     int      `json:"word_count"`
	SentenceCount int      `json:"sentence_count"`
}

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	sentenceEndRe = regexp.MustCompile(`[.!?]+(?:\s+|$)`)
)

// Normalize collapses runs of whitespace to single spaces, trims the
// text, and splits it into sentences on terminal punctuation followed by
// whitespace or end of string. Empty fragments are discarded. Word count
// is naive whitespace splitting of the cleaned text; no locale awareness.
func Normalize(text string) NormalizedText {
	clean := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	var sentences []string
	for _, fragment := range sentenceEndRe.Split(clean, -1) {
		fragment = strings.TrimSpace(fragment)
		if fragment != "" {
			sentences = append(sentences, fragment)
		}
	}

	wordCount := 0
	if clean != "" {
		wordCount = len(strings.Fields(clean))
	}

	return NormalizedText{
		Sentences:     sentences,
		CharCount:     len(clean),
		WordCount:     wordCount,
		SentenceCount: len(sentences),
	}
}
