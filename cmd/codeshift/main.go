package main

import (
	"os"

	"github.com/seamlabs/codeshift/internal/cmd"
)

// Build metadata injected via -ldflags.
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

func main() {
	cmd.SetVersionInfo(version, commit, buildDate)
	os.Exit(cmd.Execute())
}
