package main

import (
	"os"

	"promptboard/internal/cli"
	"promptboard/internal/tui"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], tui.Run, os.Stdout, os.Stderr))
}
