package main

import (
	"os"

	"lantern/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
