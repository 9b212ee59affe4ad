package main

import (
	"os"

	"github.com/wonny/goldcross/cmd/goldcross/commands"
)

// main is the entry point for the goldcross CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
