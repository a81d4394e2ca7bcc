package codec

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/savekeeper/internal/domain"
)

func deflate(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = w.Write([]byte(text))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

const sampleSave = `return {["GAME"]={["round"]=7,["dollars"]=12,},["BACK"]={["name"]="Red Deck",["key"]="b_red",},}`

func TestExtractMetadata(t *testing.T) {
	md, err := ExtractMetadata(deflate(t, sampleSave))
	require.NoError(t, err)
	assert.Equal(t, "Red Deck", md.DeckName)
	assert.Equal(t, "7", md.Round)
}

func TestExtractMetadata_MissingMarkers(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no deck marker", `return {["GAME"]={["round"]=7,},}`},
		{"no round marker", `return {["BACK"]={["name"]="Red Deck",},}`},
		{"unterminated deck name", `["round"]=3,["BACK"]={["name"]="Red Deck`},
		{"unterminated round", `["BACK"]={["name"]="Red Deck",["round"]=3`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractMetadata(deflate(t, tt.text))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedSave), "got %v", err)
		})
	}
}

func TestExtractMetadata_NonNumericRound(t *testing.T) {
	for _, round := range []string{"nil", "1/2", "", "-3", "7x"} {
		text := `["GAME"]={["round"]=` + round + `,},["BACK"]={["name"]="Red Deck",}`
		_, err := ExtractMetadata(deflate(t, text))
		assert.ErrorIs(t, err, domain.ErrMalformedSave, "round %q", round)
	}
}

func TestExtractMetadata_NotDeflate(t *testing.T) {
	_, err := ExtractMetadata([]byte{0xff, 0xff, 0xff, 0xff})
	require.ErrorIs(t, err, domain.ErrMalformedSave)
}

func TestRenderFilename(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	md, err := ExtractMetadata(deflate(t, sampleSave))
	require.NoError(t, err)

	got := RenderFilename(3, ts, md.DeckName, md.Round)
	assert.Equal(t, "P3 2024-01-01 10-00-00 Red Deck Round 7.jkr", got)
}

func TestRenderFilename_SanitizesDeckName(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	got := RenderFilename(1, ts, `Odd/Deck:"X"`, "2")
	assert.Equal(t, "P1 2024-05-06 07-08-09 Odd_Deck__X_ Round 2.jkr", got)
}
