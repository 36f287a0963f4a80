package testlog

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/korvin-os/korvin/internal/logging"
)

// Start configures test logging and returns a logger scoped to the running
// test.
func Start(t *testing.T) zerolog.Logger {
	t.Helper()
	logging.ConfigureTests()
	return zerolog.New(zerolog.NewTestWriter(t)).With().Str("test", t.Name()).Logger()
}
