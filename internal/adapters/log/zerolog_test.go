package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/savekeeper/internal/ports"
)

func TestZerologAdapter_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	a := NewZerologAdapterWithLogger(zerolog.New(&buf))

	a.Info("saved",
		ports.String("file", "P1 2024-01-01 10-00-00 Red Deck Round 7.jkr"),
		ports.Int("profile", 1),
		ports.Bool("created", true),
		ports.Duration("took", 2*time.Second),
		ports.Err(errors.New("boom")),
	)

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if got["message"] != "saved" {
		t.Errorf("message = %v, want saved", got["message"])
	}
	if got["file"] != "P1 2024-01-01 10-00-00 Red Deck Round 7.jkr" {
		t.Errorf("file = %v", got["file"])
	}
	if got["profile"] != float64(1) {
		t.Errorf("profile = %v, want 1", got["profile"])
	}
	if got["error"] != "boom" {
		t.Errorf("error = %v, want boom", got["error"])
	}
}

func TestZerologAdapter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	a := NewZerologAdapterWithLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))

	a.Debug("hidden")
	a.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}
	a.Warn("shown")
	if buf.Len() == 0 {
		t.Fatal("expected warn output")
	}
}
