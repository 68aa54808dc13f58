package portfolio

import (
	"io"
	"log/slog"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	// verify no goroutine leaks across tests in this package
	goleak.VerifyTestMain(m)
}
