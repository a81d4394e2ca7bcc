package log

import (
	"errors"
	"testing"

	"github.com/bft-labs/savekeeper/internal/ports"
)

func TestNoopLogger_Discards(t *testing.T) {
	var l ports.Logger = NewNoopLogger()

	l.Debug("d", ports.String("k", "v"))
	l.Info("i")
	l.Warn("w", ports.Err(errors.New("boom")))
	l.Error("e", ports.Int("n", 1))
}
