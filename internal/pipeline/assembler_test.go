package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/deckforge/internal/domain"
)

func TestAssembleKeywordEntityDeck(t *testing.T) {
	keywords := []domain.Keyword{
		{Term: "reactor", Score: 0.4, Context: "The reactor needs cooling"},
		{Term: "coolant", Score: 0.2},
	}
	entities := []domain.Entity{
		{SurfaceForm: "Kepler", Type: domain.EntityTypeTerm, Context: "astronomer"},
	}

	deck := AssembleKeywordEntityDeck("a short summary", keywords, entities, "notes.txt")
	require.Len(t, deck, 4)

	assert.Equal(t, "Summarize the key points from notes.txt", deck[0].Front)
	assert.Equal(t, "a short summary", deck[0].Back)

	assert.Equal(t, "What is reactor?", deck[1].Front)
	assert.Equal(t, "The reactor needs cooling", deck[1].Back)

	// Keywords without a context sentence get a placeholder back.
	assert.Equal(t, "What is coolant?", deck[2].Front)
	assert.Equal(t, "A key term from notes.txt", deck[2].Back)

	assert.Equal(t, "Define or describe: Kepler", deck[3].Front)
	assert.Equal(t, "astronomer", deck[3].Back)
}

func TestAssembleKeywordEntityDeckSkipsEmptySummary(t *testing.T) {
	deck := AssembleKeywordEntityDeck("", nil, nil, "notes.txt")

	assert.Empty(t, deck)
}

func TestAssembleKeywordEntityDeckCaps(t *testing.T) {
	var keywords []domain.Keyword
	for i := 0; i < 12; i++ {
		keywords = append(keywords, domain.Keyword{Term: fmt.Sprintf("term%d", i)})
	}
	var entities []domain.Entity
	for i := 0; i < 9; i++ {
		entities = append(entities, domain.Entity{
			SurfaceForm: fmt.Sprintf("Entity%d", i),
			Type:        domain.EntityTypeUnknown,
			Context:     "somewhere",
		})
	}

	deck := AssembleKeywordEntityDeck("summary", keywords, entities, "big.txt")

	// 1 summary + 8 keyword + 5 entity cards.
	assert.Len(t, deck, 14)
}

func TestAssembleComplexWordDeck(t *testing.T) {
	words := []domain.ComplexWord{
		{Word: "extraordinary", Syllables: 5, Length: 13, ComplexityScore: 65},
		{Word: "banana", Syllables: 3, Length: 6, ComplexityScore: 18},
	}

	deck := AssembleComplexWordDeck(words)
	require.Len(t, deck, 2)

	assert.Equal(t, "extraordinary", deck[0].Front)
	assert.Equal(t, `Write your own definition for "extraordinary"`, deck[0].Back)
	assert.Equal(t, "banana", deck[1].Front)
	assert.Equal(t, `Write your own definition for "banana"`, deck[1].Back)
}

func TestAssembleComplexWordDeckEmpty(t *testing.T) {
	assert.Empty(t, AssembleComplexWordDeck(nil))
}
