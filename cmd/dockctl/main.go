package main

import "github.com/docktree/docktree/internal/cli"

// Build-time variables (set via ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Execute()
}
