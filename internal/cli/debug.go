package cli

import (
	"io"
	"log"

	"github.com/ariel-frischer/tagchangelog/internal/changelog"
	"github.com/ariel-frischer/tagchangelog/internal/git"
)

// enableDebugLogging routes git and changelog debug lines to w.
// The returned func restores the no-op loggers.
func enableDebugLogging(w io.Writer) func() {
	logger := log.New(w, "debug ", log.Ltime|log.Lmicroseconds)
	git.SetDebugLogger(logger.Printf)
	changelog.SetDebugLogger(logger.Printf)

	return func() {
		git.SetDebugLogger(nil)
		changelog.SetDebugLogger(nil)
	}
}
