package pipeline

import (
	"sort"
	"strings"
)

// summaryStopwords are excluded from sentence scoring.
var summaryStopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {},
}

// Summarize produces an extractive summary: sentences are scored by the
// summed document frequency of their words, the top numSentences are
// selected, and the selection is re-ordered to document order. When the
// document has numSentences or fewer sentences, they are all returned.
func Summarize(sentences []string, numSentences int) string {
	if len(sentences) <= numSentences {
		return strings.Join(sentences, " ")
	}

	// Word frequency over the whole document, excluding stopwords and
	// short tokens.
	wordFreq := make(map[string]int)
	for _, sentence := range sentences {
		for _, word := range strings.Fields(strings.ToLower(sentence)) {
			if _, stop := summaryStopwords[word]; stop || len(word) <= 2 {
				continue
			}
			wordFreq[word]++
		}
	}

	type scored struct {
		idx   int
		score int
	}
	scores := make([]scored, len(sentences))
	for idx, sentence := range sentences {
		score := 0
		for _, word := range strings.Fields(strings.ToLower(sentence)) {
			score += wordFreq[word]
		}
		scores[idx] = scored{idx: idx, score: score}
	}

	// Top-N by score; stable sort keeps document order among ties.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})
	top := scores[:numSentences]
	sort.Slice(top, func(i, j int) bool {
		return top[i].idx < top[j].idx
	})

	parts := make([]string, 0, len(top))
	for _, s := range top {
		parts = append(parts, sentences[s.idx])
	}
	return strings.Join(parts, " ")
}
