// Package codec extracts the deck name and round from a compressed save blob
// and renders archive filenames from them.
//
// The save is raw DEFLATE wrapping a serialized table. Only two fields are
// needed, so extraction is ordered substring search rather than a parse of
// the table format.
package codec

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"

	"github.com/bft-labs/savekeeper/internal/domain"
)

const (
	// DeckNameKey precedes the quoted deck name.
	DeckNameKey = `["BACK"]={["name"]="`

	// RoundKey precedes the round counter, which runs up to the next comma.
	RoundKey = `["round"]=`

	// TimestampLayout is the archive filename timestamp format.
	TimestampLayout = "2006-01-02 15-04-05"

	maxDecompressedBytes = 64 << 20
)

// Metadata holds the fields extracted from a save blob.
type Metadata struct {
	DeckName string
	Round    string
}

// ExtractMetadata decompresses raw and pulls out the deck name and round.
// Returns domain.ErrMalformedSave if the blob does not inflate or a marker is absent.
func ExtractMetadata(raw []byte) (Metadata, error) {
	text, err := decompress(raw)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: inflate: %v", domain.ErrMalformedSave, err)
	}

	deck, ok := valueAfter(text, DeckNameKey, `"`)
	if !ok {
		return Metadata{}, fmt.Errorf("%w: deck name marker not found", domain.ErrMalformedSave)
	}
	round, ok := valueAfter(text, RoundKey, ",")
	if !ok {
		return Metadata{}, fmt.Errorf("%w: round marker not found", domain.ErrMalformedSave)
	}
	round = strings.TrimSpace(round)
	if !isDigits(round) {
		return Metadata{}, fmt.Errorf("%w: round %q is not a number", domain.ErrMalformedSave, round)
	}

	return Metadata{DeckName: deck, Round: round}, nil
}

// RenderFilename formats an archive filename. ts is the live save's
// modification time, so the name reflects when the game saved.
func RenderFilename(profile int, ts time.Time, deckName, round string) string {
	return fmt.Sprintf("P%d %s %s Round %s.%s",
		profile, ts.Format(TimestampLayout), sanitize(deckName), round, domain.ArchiveExt)
}

func decompress(raw []byte) (string, error) {
	zr := flate.NewReader(bytes.NewReader(raw))
	defer zr.Close()

	b, err := io.ReadAll(io.LimitReader(zr, maxDecompressedBytes))
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(b), "�"), nil
}

// valueAfter returns the text between key and the next terminator.
func valueAfter(text, key, terminator string) (string, bool) {
	i := strings.Index(text, key)
	if i < 0 {
		return "", false
	}
	rest := text[i+len(key):]
	end := strings.Index(rest, terminator)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// sanitize replaces characters that are invalid in filenames on any
// supported platform.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, name)
}
