package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/homebrew-automation/internal/cli"
	"github.com/arthur-debert/homebrew-automation/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "HOMEBREW-AUTOMATION",
		Section: "1",
		Source:  "homebrew-automation " + version.Version,
		Manual:  "homebrew-automation manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
