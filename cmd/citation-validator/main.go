package main

import (
	"os"

	"bookcheck/internal/cli"
)

func main() {
	os.Exit(cli.Run(cli.NewCitationValidatorCmd(), os.Args[1:]))
}
