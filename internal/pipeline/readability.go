package pipeline

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/deckforge/deckforge/internal/domain"
)

// DefaultTopComplexWords is the complex-word count used when none is
// configured.
const DefaultTopComplexWords = 20

var alphaWordRe = regexp.MustCompile(`[A-Za-z]+`)

// AnalyzeReadability computes the Flesch-Kincaid grade level of the text
// along with a ranking of its most complex words.
//
// Grade level is 0.39*(words/sentences) + 11.8*(syllables/words) - 15.59,
// evaluated only when both counts are positive, else 0. The grade and
// both averages are rounded to 2 decimal places. Complexity per unique
// word (length > 2 only) is syllables times character length; words are
// collected in first-occurrence order and stable-sorted by descending
// complexity, so ties keep first-seen order.
func AnalyzeReadability(text string, topN int) *domain.ReadabilityReport {
	if topN <= 0 {
		topN = DefaultTopComplexWords
	}

	sentences := Normalize(text).Sentences

	var words []string
	for _, raw := range alphaWordRe.FindAllString(text, -1) {
		words = append(words, strings.ToLower(raw))
	}

	totalSentences := len(sentences)
	totalWords := len(words)
	totalSyllables := 0
	for _, word := range words {
		totalSyllables += CountSyllables(word)
	}

	var grade, avgWords, avgSyllables float64
	if totalSentences > 0 && totalWords > 0 {
		grade = 0.39*(float64(totalWords)/float64(totalSentences)) +
			11.8*(float64(totalSyllables)/float64(totalWords)) - 15.59
		avgWords = float64(totalWords) / float64(totalSentences)
		avgSyllables = float64(totalSyllables) / float64(totalWords)
	}

	return &domain.ReadabilityReport{
		GradeLevel:          round2(grade),
		TotalSentences:      totalSentences,
		TotalWords:          totalWords,
		TotalSyllables:      totalSyllables,
		AvgWordsPerSentence: round2(avgWords),
		AvgSyllablesPerWord: round2(avgSyllables),
		ComplexWords:        complexWords(words, topN),
	}
}

// CountSyllables estimates the syllable count of a word: each maximal
// run of vowel characters (a e i o u y) starts a syllable, a trailing
// 'e' subtracts one, and the result is floored at 1. Input is treated
// case-insensitively.
func CountSyllables(word string) int {
	word = strings.ToLower(word)

	count := 0
	previousWasVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !previousWasVowel {
			count++
		}
		previousWasVowel = isVowel
	}

	if strings.HasSuffix(word, "e") {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

// complexWords ranks unique words (length > 2) by descending complexity
// score, keeping the top n. Words enter the ranking in first-occurrence
// order and the sort is stable, so equal scores keep document order.
func complexWords(words []string, n int) []domain.ComplexWord {
	seen := make(map[string]struct{})
	var ranked []domain.ComplexWord
	for _, word := range words {
		if len(word) <= 2 {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}

		syllables := CountSyllables(word)
		ranked = append(ranked, domain.ComplexWord{
			Word:            word,
			Syllables:       syllables,
			Length:          len(word),
			ComplexityScore: syllables * len(word),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ComplexityScore > ranked[j].ComplexityScore
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
