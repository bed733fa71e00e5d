package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownProfile(t *testing.T) {
	_, err := New(Config{Profile: "haiku"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestNewDefaultsEmptyProfile(t *testing.T) {
	p, err := New(Config{})

	require.NoError(t, err)
	assert.Equal(t, ProfileComplexWords, p.Profile())
}

func TestRunComplexWordsProfile(t *testing.T) {
	p, err := New(Config{Profile: ProfileComplexWords})
	require.NoError(t, err)

	result, err := p.Run("cat banana extraordinary.", "words.txt")
	require.NoError(t, err)

	require.NotNil(t, result.Readability)
	require.Len(t, result.Deck, 3)
	assert.Equal(t, "extraordinary", result.Deck[0].Front)
	assert.Equal(t, "banana", result.Deck[1].Front)
	assert.Equal(t, "cat", result.Deck[2].Front)

	// The richer profile's summary stage is skipped.
	assert.Equal(t, "", result.Summary)
}

func TestRunKeywordEntityProfile(t *testing.T) {
	p, err := New(Config{Profile: ProfileKeywordEntity})
	require.NoError(t, err)

	result, err := p.Run("Hello world. The Quick Brown Fox jumps. Fox is a animal.", "fox.txt")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Normalized.SentenceCount)
	assert.NotEmpty(t, result.Summary)
	assert.NotEmpty(t, result.Entities)
	require.NotEmpty(t, result.Deck)
	assert.Equal(t, "Summarize the key points from fox.txt", result.Deck[0].Front)
}

func TestRunEmptyDocument(t *testing.T) {
	p, err := New(Config{Profile: ProfileComplexWords})
	require.NoError(t, err)

	result, err := p.Run("", "empty.txt")
	require.NoError(t, err)

	assert.Empty(t, result.Deck)
	assert.Empty(t, result.Keywords)
	assert.Empty(t, result.Entities)
	assert.Equal(t, 0.0, result.Readability.GradeLevel)
}

func TestRunIsDeterministic(t *testing.T) {
	p, err := New(Config{Profile: ProfileKeywordEntity})
	require.NoError(t, err)

	text := "The reactor hums. Coolant flows through the reactor. Kepler is a name."

	first, err := p.Run(text, "same.txt")
	require.NoError(t, err)
	second, err := p.Run(text, "same.txt")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
