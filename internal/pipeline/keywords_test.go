package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywordsRanking(t *testing.T) {
	sentences := []string{
		"machine learning rocks",
		"machine learning wins",
		"flowers bloom",
	}

	keywords := ExtractKeywords(sentences, 10)
	require.Len(t, keywords, 6)

	// Terms appearing in a single sentence carry positive scores; terms
	// in most sentences score zero. Ties keep first-encountered order.
	var terms []string
	for _, kw := range keywords {
		terms = append(terms, kw.Term)
	}
	assert.Equal(t, []string{"rocks", "wins", "flowers", "bloom", "machine", "learning"}, terms)

	for i := 1; i < len(keywords); i++ {
		assert.LessOrEqual(t, keywords[i].Score, keywords[i-1].Score,
			"scores must be sorted descending")
	}
	for _, kw := range keywords {
		assert.GreaterOrEqual(t, kw.Score, 0.0)
	}
}

func TestExtractKeywordsContextSentence(t *testing.T) {
	sentences := []string{
		"Nothing relevant here",
		"The reactor needs cooling",
		"A reactor again",
	}

	keywords := ExtractKeywords(sentences, 10)

	var reactor *string
	for _, kw := range keywords {
		if kw.Term == "reactor" {
			ctx := kw.Context
			reactor = &ctx
		}
	}
	require.NotNil(t, reactor)
	assert.Equal(t, "The reactor needs cooling", *reactor)
}

func TestExtractKeywordsFiltersStopwordsAndShortTokens(t *testing.T) {
	keywords := ExtractKeywords([]string{"it is at an to of ab xy quantum"}, 10)

	require.Len(t, keywords, 1)
	assert.Equal(t, "quantum", keywords[0].Term)
}

func TestExtractKeywordsTopN(t *testing.T) {
	sentences := []string{
		"alpha bravo charlie",
		"delta echo foxtrot",
		"golf hotel india",
	}

	keywords := ExtractKeywords(sentences, 4)
	assert.Len(t, keywords, 4)
}

func TestExtractKeywordsEmptyInput(t *testing.T) {
	assert.Empty(t, ExtractKeywords(nil, 10))
	assert.Empty(t, ExtractKeywords([]string{}, 10))
	assert.Empty(t, ExtractKeywords([]string{"a an the"}, 10))
}
