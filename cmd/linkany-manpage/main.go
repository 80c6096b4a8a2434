package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/linkany/internal/cli"
	"github.com/arthur-debert/linkany/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()
	rootCmd.DisableAutoGenTag = true

	header := &doc.GenManHeader{
		Title:   "LINKANY",
		Section: "1",
		Source:  "linkany " + version.Version,
		Manual:  "linkany manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
