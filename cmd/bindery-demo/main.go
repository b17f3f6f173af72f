// Command bindery-demo runs a terminal playground for the bindery binding
// layer: a small rich-text editor over the in-memory reference surface.
package main

import (
	"fmt"
	"os"
)

// Build information injected via ldflags at build time.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

func main() {
	SetVersion(fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, buildCommit, buildDate))
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
