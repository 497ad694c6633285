package main

import (
	"os"

	"github.com/arthur-debert/homebrew-automation/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
