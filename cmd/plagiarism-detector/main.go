package main

import (
	"os"

	"bookcheck/internal/cli"
)

func main() {
	os.Exit(cli.Run(cli.NewPlagiarismDetectorCmd(), os.Args[1:]))
}
