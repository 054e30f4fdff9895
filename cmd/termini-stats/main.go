package main

import (
	"fmt"
	"os"

	"termini-stats/cmd/termini-stats/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
