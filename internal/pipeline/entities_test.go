package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/deckforge/internal/domain"
)

func TestExtractEntitiesScenario(t *testing.T) {
	sentences := Normalize("Hello world. The Quick Brown Fox jumps. Fox is a animal.").Sentences

	entities := ExtractEntities(sentences)
	require.Len(t, entities, 3)

	assert.Equal(t, "Hello", entities[0].SurfaceForm)
	assert.Equal(t, domain.EntityTypeUnknown, entities[0].Type)
	assert.Equal(t, "Hello world", entities[0].Context)

	assert.Equal(t, "Quick Brown Fox", entities[1].SurfaceForm)
	assert.Equal(t, domain.EntityTypeUnknown, entities[1].Type)

	assert.Equal(t, "Fox", entities[2].SurfaceForm)
	assert.Equal(t, domain.EntityTypeTerm, entities[2].Type)
	assert.Equal(t, "animal", entities[2].Context)
}

func TestExtractEntitiesDefinitionPattern(t *testing.T) {
	entities := ExtractEntities([]string{"Redis is an in-memory data store, widely deployed"})

	require.Len(t, entities, 1)
	assert.Equal(t, "Redis", entities[0].SurfaceForm)
	assert.Equal(t, domain.EntityTypeTerm, entities[0].Type)
	// Description stops at clause punctuation.
	assert.Equal(t, "in-memory data store", entities[0].Context)
}

func TestExtractEntitiesDeduplicates(t *testing.T) {
	entities := ExtractEntities([]string{
		"Kepler observed planets",
		"Kepler wrote laws",
	})

	require.Len(t, entities, 1)
	assert.Equal(t, "Kepler", entities[0].SurfaceForm)
	assert.Equal(t, "Kepler observed planets", entities[0].Context)
}

func TestExtractEntitiesDiscardsBareDeterminers(t *testing.T) {
	entities := ExtractEntities([]string{"The end came quickly", "This too shall pass"})

	for _, e := range entities {
		assert.NotEqual(t, "The", e.SurfaceForm)
		assert.NotEqual(t, "This", e.SurfaceForm)
	}
}

func TestExtractEntitiesCap(t *testing.T) {
	var sentences []string
	for i := 0; i < 26; i++ {
		sentences = append(sentences, fmt.Sprintf("Word%c%c appeared again", 'a'+rune(i), 'a'+rune(i)))
	}

	entities := ExtractEntities(sentences)
	assert.Len(t, entities, MaxEntities)
}
