package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a console logger. Simulations stay quiet at warn
// level; verbose switches on the engine's per-round narration.
func SetupLogger(verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level: level,
	})
}
