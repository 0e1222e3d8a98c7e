package main

import "github.com/rileyhilliard/ghost/internal/cli"

// Version information injected via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	cli.Execute()
}
