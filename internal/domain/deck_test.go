package domain

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckValidate(t *testing.T) {
	valid := Deck{
		{Front: "What is Go?", Back: "A language"},
		{Front: "ephemeral", Back: ""},
	}
	assert.NoError(t, valid.Validate())
	assert.NoError(t, Deck(nil).Validate())

	invalid := Deck{{Front: "ok"}, {Front: ""}}
	assert.ErrorIs(t, invalid.Validate(), ErrEmptyCardFront)
}

func TestDeckWriteCSV(t *testing.T) {
	deck := Deck{
		{Front: "What is Go?", Back: "A language"},
		{Front: "ephemeral", Back: "short-lived"},
	}

	var buf bytes.Buffer
	require.NoError(t, deck.WriteCSV(&buf))

	assert.Equal(t, "Front,Back\nWhat is Go?,A language\nephemeral,short-lived\n", buf.String())
}

func TestDeckCSVRoundTrip(t *testing.T) {
	deck := Deck{
		{Front: "comma, included", Back: `quote "inside"`},
		{Front: "multi\nline front", Back: "plain"},
		{Front: "empty back", Back: ""},
	}

	var buf bytes.Buffer
	require.NoError(t, deck.WriteCSV(&buf))

	decoded, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, deck, decoded)
}

func TestDeckWriteCSVEmptyDeck(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Deck(nil).WriteCSV(&buf))

	assert.Equal(t, "Front,Back\n", buf.String())

	decoded, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestReadCSVRejectsBadHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Question,Answer\na,b\n"))
	require.Error(t, err)

	_, err = ReadCSV(strings.NewReader(""))
	require.Error(t, err)
}
