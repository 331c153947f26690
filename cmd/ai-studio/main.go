// Package main provides the entry point for the ai-studio CLI.
package main

import (
	"fmt"
	"os"

	"github.com/cecil-the-coder/ai-studio-kit/cmd/ai-studio/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
