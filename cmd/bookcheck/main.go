package main

import "bookcheck/internal/cli"

func main() {
	cli.Execute()
}
