package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	input := "Hello world. The Quick Brown Fox jumps. Fox is a animal."
	result := Normalize(input)

	assert.Equal(t, []string{
		"Hello world",
		"The Quick Brown Fox jumps",
		"Fox is a animal",
	}, result.Sentences)
	assert.Equal(t, 3, result.SentenceCount)
	assert.Equal(t, 11, result.WordCount)
	assert.Equal(t, len(input), result.CharCount)
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	result := Normalize("  one   two\t\tthree\n\nfour!  five?  ")

	assert.Equal(t, []string{"one two three four", "five"}, result.Sentences)
	assert.Equal(t, 5, result.WordCount)
	assert.Equal(t, len("one two three four! five?"), result.CharCount)
}

func TestNormalizeDiscardsEmptyFragments(t *testing.T) {
	result := Normalize("First... Second!!! ... !")

	assert.Equal(t, []string{"First", "Second"}, result.Sentences)
}

func TestNormalizeEmptyInput(t *testing.T) {
	result := Normalize("   \n\t  ")

	assert.Empty(t, result.Sentences)
	assert.Equal(t, 0, result.WordCount)
	assert.Equal(t, 0, result.CharCount)
	assert.Equal(t, 0, result.SentenceCount)
}

func TestNormalizeIsDeterministic(t *testing.T) {
	input := "Repeated runs. Must agree! Always?"

	first := Normalize(input)
	second := Normalize(input)

	assert.Equal(t, first, second)
}
