package pipeline

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/deckforge/deckforge/internal/domain"
)

// DefaultTopKeywords is the keyword count used when none is configured.
const DefaultTopKeywords = 10

// keywordStopwords are excluded from TF-IDF scoring.
var keywordStopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "it": {}, "its": {}, "as": {}, "by": {},
	"from": {}, "has": {}, "have": {},
}

var tokenRe = regexp.MustCompile(`[A-Za-z0-9]+`)

// ExtractKeywords ranks document terms by TF-IDF and returns up to topN
// of them, sorted by descending score with ties broken by first
// occurrence in the document.
//
// TF is a term's token count over the total token count of the whole
// document. IDF is ln(numSentences / (sentenceFrequency + 1)), where
// sentence frequency counts sentences containing the term at least once.
// Negative products are floored at zero so scores stay non-negative.
// Tokens are lower-cased alphanumeric runs; stopwords and tokens of
// length <= 2 are dropped.
func ExtractKeywords(sentences []string, topN int) []domain.Keyword {
	if topN <= 0 {
		topN = DefaultTopKeywords
	}
	if len(sentences) == 0 {
		return nil
	}

	// Token counts across the whole document, remembering first-seen
	// order so tie-breaking is deterministic.
	counts := make(map[string]int)
	var order []string
	for _, sentence := range sentences {
		for _, token := range tokenize(sentence) {
			if _, seen := counts[token]; !seen {
				order = append(order, token)
			}
			counts[token]++
		}
	}
	if len(order) == 0 {
		return nil
	}

	totalTokens := 0
	for _, count := range counts {
		totalTokens += count
	}

	// Sentence frequency: number of sentences containing each term.
	sentenceFreq := make(map[string]int)
	for _, sentence := range sentences {
		seen := make(map[string]struct{})
		for _, token := range tokenize(sentence) {
			seen[token] = struct{}{}
		}
		for token := range seen {
			sentenceFreq[token]++
		}
	}

	numSentences := float64(len(sentences))
	keywords := make([]domain.Keyword, 0, len(order))
	for _, term := range order {
		tf := float64(counts[term]) / float64(totalTokens)
		idf := math.Log(numSentences / float64(sentenceFreq[term]+1))
		score := tf * idf
		if score < 0 {
			score = 0
		}
		keywords = append(keywords, domain.Keyword{
			Term:    term,
			Score:   score,
			Context: contextSentence(sentences, term),
		})
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Score > keywords[j].Score
	})

	if len(keywords) > topN {
		keywords = keywords[:topN]
	}
	return keywords
}

// tokenize splits a sentence into lower-cased alphanumeric runs,
// dropping stopwords and tokens of length <= 2.
func tokenize(sentence string) []string {
	var tokens []string
	for _, raw := range tokenRe.FindAllString(sentence, -1) {
		token := strings.ToLower(raw)
		if len(token) <= 2 {
			continue
		}
		if _, stop := keywordStopwords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// contextSentence returns the first sentence in document order whose
// lower-cased form contains term as a substring, or "" if none does.
func contextSentence(sentences []string, term string) string {
	for _, sentence := range sentences {
		if strings.Contains(strings.ToLower(sentence), term) {
			return sentence
		}
	}
	return ""
}
