package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/linkany/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "Error: "+msg)
		}
	}
	os.Exit(cli.ExitCode(err))
}
