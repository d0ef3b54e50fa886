package main

import (
	"os"

	"bookcheck/internal/cli"
)

func main() {
	os.Exit(cli.Run(cli.NewReadabilityAnalyzerCmd(), os.Args[1:]))
}
