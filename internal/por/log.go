package por

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the package-level charmbracelet/log structured logger:
// constructed once, level controlled by the caller (e.g. a -v/--verbose
// flag).
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "por",
})

// SetVerbose raises the logger to debug level when v is true, info
// otherwise.
func SetVerbose(v bool) {
	if v {
		Logger.SetLevel(log.DebugLevel)
	} else {
		Logger.SetLevel(log.InfoLevel)
	}
}
