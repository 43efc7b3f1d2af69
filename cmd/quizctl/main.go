// Package main is the entry point for the quizctl maintenance CLI.
package main

import (
	"os"

	"quizmaster_app/cmd/quizctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
